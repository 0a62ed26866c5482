package httpline

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/tienmou/line-roster-bot/internal/adapters/line"
	"github.com/tienmou/line-roster-bot/internal/app/service"
)

// Replier is the outbound reply primitive; implemented by line.Client.
type Replier interface {
	ReplyText(ctx context.Context, replyToken, text string) error
}

type Server struct {
	channelSecret string
	dispatcher    *service.Dispatcher
	events        *service.EventsService
	replier       Replier
	mux           *http.ServeMux
}

func New(channelSecret string, dispatcher *service.Dispatcher, events *service.EventsService, replier Replier) *Server {
	s := &Server{
		channelSecret: channelSecret,
		dispatcher:    dispatcher,
		events:        events,
		replier:       replier,
		mux:           http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/line/webhook", s.handleWebhook)
}

// Handler exposes the mux, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	_ = r.Body.Close()
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if !line.ValidateSignature(s.channelSecret, body, r.Header.Get("X-Line-Signature")) {
		log.Println("webhook: invalid signature")
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var payload line.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	for _, ev := range payload.Events {
		if err := s.HandleEvent(r.Context(), ev); err != nil {
			// 500 makes the platform redeliver the webhook call.
			log.Printf("webhook: event %s failed: %v", ev.Type, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

// HandleEvent routes one decoded webhook event. Shared with the Lambda
// entrypoint in cmd/webhook.
func (s *Server) HandleEvent(ctx context.Context, ev line.Event) error {
	switch ev.Type {
	case "message":
		if ev.Message == nil || ev.Message.Type != "text" {
			return nil
		}
		reply, send, err := s.dispatcher.Dispatch(ctx, ev.Message.Text, ev.Source.Domain())
		if err != nil {
			return err
		}
		if !send {
			return nil
		}
		return s.replier.ReplyText(ctx, ev.ReplyToken, reply)

	case "memberJoined":
		return s.events.HandleMemberJoined(ctx, ev.Source.GroupID)

	case "memberLeft":
		if ev.Left == nil {
			return nil
		}
		for _, m := range ev.Left.Members {
			if err := s.events.HandleMemberLeft(ctx, m.UserID); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

func (s *Server) Start(addr string) {
	log.Printf("🌐 HTTP listening on %s", addr)
	if err := http.ListenAndServe(addr, s.mux); err != nil {
		log.Fatalf("http server: %v", err)
	}
}
