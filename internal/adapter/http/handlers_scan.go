package adapthttp

import (
	"encoding/base64"
	"io"
	"log"
	"net/http"

	"knowyourplant/internal/app"
	"knowyourplant/internal/domain"

	"github.com/gorilla/websocket"
)

const maxUploadBytes = 10 << 20

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, app.ErrNoImage)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	capture := domain.CaptureType(r.FormValue("capture_type"))
	result, err := s.scan.Identify(r.Context(), userFrom(r).ID, image, header.Header.Get("Content-Type"), capture)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, result)
	case app.ErrNoImage, app.ErrNotImage:
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusBadGateway, err)
	}
}

// handleLiveScan upgrades to a websocket and identifies frames as they
// arrive. The client sends {"type":"frame","data":{"image":<base64>}} and
// receives {"type":"scan_result","data":<result>} per frame.
func (s *Server) handleLiveScan(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("websocket upgrade failed:", err)
		return
	}
	defer conn.Close()

	for {
		var msg struct {
			Type string `json:"type"`
			Data struct {
				Image string `json:"image"`
				MIME  string `json:"mime"`
			} `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "frame":
			image, err := base64.StdEncoding.DecodeString(msg.Data.Image)
			if err != nil {
				sendWSError(conn, "invalid image encoding")
				continue
			}

			result, err := s.scan.Identify(r.Context(), user.ID, image, msg.Data.MIME, domain.CaptureLive)
			if err != nil {
				sendWSError(conn, err.Error())
				continue
			}
			sendWSMessage(conn, "scan_result", result)

		case "stop":
			return

		default:
			sendWSError(conn, "unknown message type")
		}
	}
}

func sendWSMessage(conn *websocket.Conn, messageType string, data any) {
	msg := map[string]any{
		"type": messageType,
		"data": data,
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Println("websocket write:", err)
	}
}

func sendWSError(conn *websocket.Conn, message string) {
	msg := map[string]any{
		"type":    "error",
		"message": message,
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Println("websocket write:", err)
	}
}
