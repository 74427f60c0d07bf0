package agent

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"
)

// serveChatSocket runs chat turns over a websocket: one Request per inbound
// text frame, one envelope per outbound frame. Errors are reported in-band and
// the connection stays open.
func serveChatSocket(ctx context.Context, conn *websocket.Conn, handler *Handler) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket closed unexpectedly", "error", err)
			}
			return
		}

		var out any

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			out = errorEnvelope(CodeValidation, "invalid request body: "+err.Error())
		} else if resp, err := handler.Handle(ctx, req); err != nil {
			_, out = errorResponse(err)
		} else {
			out = SuccessEnvelope{Data: resp}
		}

		if err := conn.WriteJSON(out); err != nil {
			slog.Error("failed to write to ws connection", "error", err)
			return
		}
	}
}
