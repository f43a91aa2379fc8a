package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/assistant"
	"github.com/alexanderramin/coach/internal/domain"
)

// sessionID copies the route id out of the request buffer, which fiber reuses
// once the handler returns. Registry keys must outlive the request.
func sessionID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

func (s *Server) session(c *fiber.Ctx) (*liveSession, error) {
	ls, ok := s.registry.Get(sessionID(c))
	if !ok {
		return nil, errSessionNotFound
	}
	return ls, nil
}

// respond runs fn under the session lock and writes the resulting view.
func (s *Server) respond(c *fiber.Ctx, status int, fn func(sess *assistant.Session) error) error {
	ls, err := s.session(c)
	if err != nil {
		return err
	}
	var resp SessionResponse
	err = ls.do(func(sess *assistant.Session) error {
		if fn != nil {
			if err := fn(sess); err != nil {
				return err
			}
		}
		resp = toSessionResponse(sess)
		return nil
	})
	if err != nil {
		return err
	}
	return c.Status(status).JSON(resp)
}

func (s *Server) createSession(c *fiber.Ctx) error {
	ls, err := s.registry.Create(c.UserContext())
	if err != nil {
		return err
	}
	var resp SessionResponse
	_ = ls.do(func(sess *assistant.Session) error {
		resp = toSessionResponse(sess)
		return nil
	})
	s.logger.Info("session created", zap.String("session_id", resp.ID))
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *Server) getSession(c *fiber.Ctx) error {
	return s.respond(c, fiber.StatusOK, nil)
}

func (s *Server) deleteSession(c *fiber.Ctx) error {
	if !s.registry.Delete(sessionID(c)) {
		return errSessionNotFound
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) postMessage(c *fiber.Ctx) error {
	var req MessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return s.respond(c, fiber.StatusAccepted, func(sess *assistant.Session) error {
		return sess.Submit(req.Text)
	})
}

func (s *Server) putVariant(c *fiber.Ctx) error {
	var req VariantRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	v, err := domain.ParseVariant(req.Variant)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	return s.respond(c, fiber.StatusOK, func(sess *assistant.Session) error {
		return sess.SetVariant(ctx, v)
	})
}

func (s *Server) postSurface(c *fiber.Ctx) error {
	var req SurfaceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	action, err := domain.ParseSurfaceAction(req.Action)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return s.respond(c, fiber.StatusOK, func(sess *assistant.Session) error {
		sess.Apply(action)
		return nil
	})
}

// postQuick submits the n-th quick question, counting from 1.
func (s *Server) postQuick(c *fiber.Ctx) error {
	n, err := c.ParamsInt("n")
	qs := assistant.QuickQuestions()
	if err != nil || n < 1 || n > len(qs) {
		return fiber.NewError(fiber.StatusBadRequest, "quick question must be between 1 and "+strconv.Itoa(len(qs)))
	}
	return s.respond(c, fiber.StatusAccepted, func(sess *assistant.Session) error {
		return sess.AskIndex(n - 1)
	})
}

func (s *Server) listTopics(c *fiber.Ctx) error {
	topics := s.kb.Topics()
	out := make([]TopicResponse, 0, len(topics))
	for _, t := range topics {
		e, _ := s.kb.Lookup(t)
		out = append(out, TopicResponse{Topic: t, Title: e.Title})
	}
	return c.JSON(out)
}

func (s *Server) listQuick(c *fiber.Ctx) error {
	qs := assistant.QuickQuestions()
	out := make([]QuickResponse, 0, len(qs))
	for i, q := range qs {
		out = append(out, QuickResponse{Index: i + 1, Label: q.Label, Question: q.Question})
	}
	return c.JSON(out)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "sessions": s.registry.Len()})
}
