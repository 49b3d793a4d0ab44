package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/i18n"
	"github.com/bicheichane/millers-hollow/internal/service"
)

// errorBody is the JSON shape of every rejected request.
type errorBody struct {
	Code        string         `json:"code"`
	Kind        string         `json:"kind"`
	Message     string         `json:"message"`
	Context     map[string]any `json:"context,omitempty"`
	Recoverable bool           `json:"recoverable"`
}

func (s *Server) createSession(c *fiber.Ctx) error {
	var req service.StartRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}
	res, err := s.svc.StartSession(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	s.localize(c, &res)
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (s *Server) listSessions(c *fiber.Ctx) error {
	ids, err := s.svc.ListSessions(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(fiber.Map{"sessions": ids})
}

func (s *Server) getSession(c *fiber.Ctx) error {
	res, err := s.svc.ReadState(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	s.localize(c, &res)
	return c.JSON(res)
}

func (s *Server) submitInput(c *fiber.Ctx) error {
	var resp protocol.Response
	if err := c.BodyParser(&resp); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}
	res, err := s.svc.SubmitInput(c.Context(), c.Params("id"), &resp)
	if err != nil {
		return writeError(c, err)
	}
	s.localize(c, &res)
	return c.JSON(res)
}

// localize renders the pending instruction's announcement and direction in
// the language the Accept-Language header asks for.
func (s *Server) localize(c *fiber.Ctx, res *service.Result) {
	lang := i18n.Match(c.Get(fiber.HeaderAcceptLanguage))
	i18n.Localize(lang, &res.Pending)
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody{
		Code:        string(gameerrors.CodeInputKindMismatch),
		Kind:        string(gameerrors.KindInvalidInput),
		Message:     detail,
		Recoverable: true,
	})
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(c *fiber.Ctx, err error) error {
	code := gameerrors.CodeOf(err)
	kind := code.Kind()

	body := errorBody{
		Code:        string(code),
		Kind:        string(kind),
		Message:     err.Error(),
		Recoverable: code.Recoverable(),
	}
	var coded *gameerrors.Error
	if errors.As(err, &coded) {
		body.Context = coded.Context
	}
	if kind == gameerrors.KindInternal {
		body.Message = "internal error"
	}
	return c.Status(statusOf(kind)).JSON(body)
}

func statusOf(kind gameerrors.Kind) int {
	switch kind {
	case gameerrors.KindNotFound:
		return fiber.StatusNotFound
	case gameerrors.KindInvalidInput:
		return fiber.StatusBadRequest
	case gameerrors.KindRuleViolation:
		return fiber.StatusUnprocessableEntity
	case gameerrors.KindInvalidOperation:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
