package ws

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/sketchquest/internal/services/game"
)

const invalidPayload = "Invalid payload"

func (h *Handler) createRoom(ctx context.Context, client *Client, payload json.RawMessage) any {
	var req CreateRoomRequest
	if err := decode(payload, &req); err != nil {
		return &CreateRoomAck{Error: invalidPayload}
	}

	out, err := h.gameService.CreateRoom(ctx, &game.CreateRoomInput{
		PlayerID:   client.id,
		Name:       req.Name,
		Avatar:     req.Avatar,
		MaxPlayers: req.MaxPlayers,
		NumRounds:  req.NumRounds,
	})
	if err != nil {
		return &CreateRoomAck{Error: h.failed(client, IntentCreateRoom, err)}
	}

	return &CreateRoomAck{Room: out.RoomID}
}

func (h *Handler) joinRoom(ctx context.Context, client *Client, payload json.RawMessage) any {
	var req JoinRoomRequest
	if err := decode(payload, &req); err != nil {
		return &JoinRoomAck{Error: invalidPayload}
	}

	out, err := h.gameService.JoinRoom(ctx, &game.JoinRoomInput{
		RoomID:   req.Room,
		PlayerID: client.id,
		Name:     req.Name,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return &JoinRoomAck{Error: h.failed(client, IntentJoinRoom, err)}
	}

	return &JoinRoomAck{
		OK:     true,
		Room:   out.RoomID,
		HostID: out.HostID,
	}
}

func (h *Handler) leaveRoom(ctx context.Context, client *Client, payload json.RawMessage) any {
	var req RoomRequest
	if err := decode(payload, &req); err != nil {
		return &OKAck{Error: invalidPayload}
	}

	_, err := h.gameService.LeaveRoom(ctx, &game.LeaveRoomInput{
		RoomID:   req.Room,
		PlayerID: client.id,
	})
	if err != nil {
		return &OKAck{Error: h.failed(client, IntentLeaveRoom, err)}
	}

	return &OKAck{OK: true}
}

func (h *Handler) startRound(ctx context.Context, client *Client, payload json.RawMessage) any {
	var req RoomRequest
	if err := decode(payload, &req); err != nil {
		return &OKAck{Error: invalidPayload}
	}

	_, err := h.gameService.StartRound(ctx, &game.StartRoundInput{
		RoomID:   req.Room,
		PlayerID: client.id,
	})
	if err != nil {
		return &OKAck{Error: h.failed(client, IntentStartRound, err)}
	}

	return &OKAck{OK: true}
}

func (h *Handler) chooseWord(ctx context.Context, client *Client, payload json.RawMessage) any {
	var req ChooseWordRequest
	if err := decode(payload, &req); err != nil {
		return &OKAck{Error: invalidPayload}
	}

	_, err := h.gameService.ChooseWord(ctx, &game.ChooseWordInput{
		RoomID:   req.Room,
		PlayerID: client.id,
		Word:     req.Word,
	})
	if err != nil {
		return &OKAck{Error: h.failed(client, IntentChooseWord, err)}
	}

	return &OKAck{OK: true}
}

func (h *Handler) guess(ctx context.Context, client *Client, payload json.RawMessage) any {
	var req GuessRequest
	if err := decode(payload, &req); err != nil {
		return &GuessAck{Error: invalidPayload}
	}

	out, err := h.gameService.Guess(ctx, &game.GuessInput{
		RoomID:   req.Room,
		PlayerID: client.id,
		Text:     req.Text,
	})
	if err != nil {
		return &GuessAck{Error: h.failed(client, IntentGuess, err)}
	}

	return &GuessAck{Correct: out.Correct}
}

// drawingData is fire and forget, rejected strokes are dropped
func (h *Handler) drawingData(ctx context.Context, client *Client, payload json.RawMessage) any {
	var req DrawingRequest
	if err := decode(payload, &req); err != nil {
		return nil
	}

	_, err := h.gameService.RelayDrawing(ctx, &game.RelayDrawingInput{
		RoomID:   req.Room,
		PlayerID: client.id,
		Data:     req.Data,
	})
	if err != nil {
		h.logger.Debug().Err(err).Str("player_id", client.id).Msg("drawing dropped")
	}
	return nil
}

func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, v)
}
