package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contact-form/internal/domain"
	"contact-form/internal/feature/contact"
	mdw "contact-form/internal/transport/http/middleware"
	resp "contact-form/internal/transport/http/response"
)

const (
	MsgSaved      = "contact saved successfully"
	MsgSaveFailed = "failed to save contact"
	MsgListFailed = "failed to load contacts"
	MsgBadBody    = "invalid request body"
	MsgTooLarge   = "request body too large"
)

// 表单字段，按校验顺序
var formFields = []string{"name", "email", "phone"}

type ContactService interface {
	Submit(ctx context.Context, input map[string]any) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
}

type ContactHandler struct {
	svc ContactService
	log *zap.Logger
}

func NewContactHandler(svc ContactService, l *zap.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, log: l}
}

// Mount GET / , POST / , GET /contacts
func (h *ContactHandler) Mount(g gin.IRoutes) {
	g.GET("/", h.ShowForm)
	g.POST("/", h.Submit)
	g.GET("/contacts", h.List)
}

func (h *ContactHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", gin.H{
		"Title": "Contact",
		"Form":  domain.NormalizedContact{},
	})
}

func (h *ContactHandler) Submit(c *gin.Context) {
	in, err := readInput(c)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			resp.Reply(c, resp.Error(resp.CodePayloadTooLarge, MsgTooLarge))
			return
		}
		resp.Reply(c, resp.Error(resp.CodeBadRequest, MsgBadBody))
		return
	}

	saved, err := h.svc.Submit(c.Request.Context(), in)
	var ve *contact.ValidationError
	switch {
	case errors.As(err, &ve):
		resp.Reply(c, resp.Error(resp.CodeBadRequest, ve.Error()))
	case err != nil:
		h.log.Error("save contact failed",
			zap.String("request_id", c.GetString(mdw.KeyRequestID)),
			zap.Error(err),
		)
		resp.Reply(c, resp.Error(resp.CodeServerError, MsgSaveFailed))
	default:
		resp.Reply(c, resp.OKMsg(MsgSaved, saved))
	}
}

func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("list contacts failed",
			zap.String("request_id", c.GetString(mdw.KeyRequestID)),
			zap.Error(err),
		)
		resp.Reply(c, resp.Error(resp.CodeServerError, MsgListFailed))
		return
	}

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, resp.OK(contacts))
		return
	}
	c.HTML(http.StatusOK, "contacts.html", gin.H{
		"Title":    "Contacts",
		"Contacts": contacts,
	})
}

// readInput 把 JSON 或表单 body 读成无类型 map；字段类型交给校验器判断
func readInput(c *gin.Context) (map[string]any, error) {
	if c.ContentType() == gin.MIMEJSON {
		var in map[string]any
		if err := c.ShouldBindJSON(&in); err != nil {
			return nil, err
		}
		return in, nil
	}
	// 先显式解析，body 超限等错误不会被 gin 的表单缓存吞掉
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	in := make(map[string]any, len(formFields))
	for _, k := range formFields {
		if v, ok := c.GetPostForm(k); ok {
			in[k] = v
		}
	}
	return in, nil
}
