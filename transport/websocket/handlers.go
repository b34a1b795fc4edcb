package websocket

import (
	"context"
	"encoding/json"
	"fmt"
)

func (that *Server) handleConnect(_ context.Context, c *client, msg *Message) error {
	if err := that.sendResponse(c, msg.Action, Payload{Game: that.session.State()}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleTurn(ctx context.Context, c *client, msg *Message) error {
	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil || payloadReq.Move == nil {
		return that.sendErrorResponse(c, msg.Action, "move is required")
	}

	// the new board reaches every client through the session broadcast
	if _, err := that.session.PlayLocal(ctx, payloadReq.Move.X, payloadReq.Move.Y); err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	return nil
}

func (that *Server) handlePass(ctx context.Context, c *client, msg *Message) error {
	if _, err := that.session.PassLocal(ctx); err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	return nil
}

// handleValidate answers hover checks so the board can draw a ghost stone.
func (that *Server) handleValidate(_ context.Context, c *client, msg *Message) error {
	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil || payloadReq.Move == nil {
		return that.sendErrorResponse(c, msg.Action, "move is required")
	}

	payloadResp := Payload{Move: payloadReq.Move}

	legal := true
	if err := that.session.Validate(payloadReq.Move.X, payloadReq.Move.Y); err != nil {
		legal = false
		payloadResp.Error = err.Error()
	}
	payloadResp.Legal = &legal

	return that.sendResponse(c, msg.Action, payloadResp)
}
