package controllerImp

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"agrocrm/entities"
	"agrocrm/pkg/apperr"
	dsvc "agrocrm/pkg/drone/service"
)

type httpCtrl struct {
	s   dsvc.Service
	loc *time.Location
}

func New(s dsvc.Service, loc *time.Location) *httpCtrl {
	if loc == nil {
		loc = time.Local
	}
	return &httpCtrl{s: s, loc: loc}
}

func (h *httpCtrl) Register(g *echo.Group) {
	g.GET("/drone/flights", h.list)
	g.POST("/drone/flights", h.create)
	g.GET("/drone/flights/export", h.export)
	g.PATCH("/drone/flights/:id", h.patch)
	g.DELETE("/drone/flights/:id", h.delete)
	g.POST("/drone/flights/:id/attachments", h.upload)
	g.DELETE("/drone/flights/:id/attachments", h.removeAttachment)
}

// flightReq accepts flight_date as YYYY-MM-DD or RFC3339.
type flightReq struct {
	entities.DroneFlight
	FlightDate string `json:"flight_date"`
}

func (h *httpCtrl) create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var in flightReq
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	f := in.DroneFlight
	if in.FlightDate != "" {
		d, err := h.parseDate(in.FlightDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight_date"})
		}
		f.FlightDate = d
	}
	if err := h.s.Create(c.Request().Context(), uid, &f); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *httpCtrl) list(c echo.Context) error {
	uid := c.Get("uid").(string)
	list, err := h.s.List(uid)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *httpCtrl) patch(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in dsvc.FlightPatch
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.s.UpdatePartial(c.Request().Context(), uid, uint(id), in)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *httpCtrl) delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.s.Delete(c.Request().Context(), uid, uint(id)); err != nil {
		return apperr.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// upload takes a multipart "file" field.
func (h *httpCtrl) upload(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}
	defer src.Close()

	att, err := h.s.AddAttachment(c.Request().Context(), uid, uint(id), dsvc.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        src,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, att)
}

func (h *httpCtrl) removeAttachment(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p := c.QueryParam("path")
	if p == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "path is required"})
	}
	out, err := h.s.RemoveAttachment(c.Request().Context(), uid, uint(id), p)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *httpCtrl) export(c echo.Context) error {
	uid := c.Get("uid").(string)
	doc, err := h.s.Export(uid, c.QueryParam("format"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Blob(http.StatusOK, doc.ContentType, doc.Body)
}

func (h *httpCtrl) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, h.loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
