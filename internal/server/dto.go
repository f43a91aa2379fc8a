package server

import (
	"github.com/alexanderramin/coach/internal/assistant"
	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/render"
)

type MessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type VariantRequest struct {
	Variant string `json:"variant" validate:"required,oneof=python javascript java cpp"`
}

type SurfaceRequest struct {
	Action string `json:"action" validate:"required,oneof=open close minimize toggle"`
}

// MessageResponse carries the source micro-format and its HTML rendering.
type MessageResponse struct {
	domain.Message
	HTML string `json:"html"`
}

type SessionResponse struct {
	ID        string              `json:"id"`
	Variant   domain.Variant      `json:"variant"`
	Surface   domain.SurfaceState `json:"surface"`
	Composing bool                `json:"composing"`
	Pending   int                 `json:"pending"`
	Inference bool                `json:"inference"`
	Messages  []MessageResponse   `json:"messages"`
}

type TopicResponse struct {
	Topic domain.Topic `json:"topic"`
	Title string       `json:"title"`
}

type QuickResponse struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Question string `json:"question"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toSessionResponse(s *assistant.Session) SessionResponse {
	hist := s.History()
	msgs := make([]MessageResponse, 0, len(hist))
	for _, m := range hist {
		msgs = append(msgs, MessageResponse{Message: m, HTML: render.FormatHTML(m.Content)})
	}
	return SessionResponse{
		ID:        s.ID(),
		Variant:   s.Variant(),
		Surface:   s.Surface(),
		Composing: s.Composing(),
		Pending:   s.Pending(),
		Inference: s.InferenceEnabled(),
		Messages:  msgs,
	}
}
