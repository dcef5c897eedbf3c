package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrocrm/entities"
	"agrocrm/pkg/apperr"
	"agrocrm/pkg/lead/repository"
	"agrocrm/pkg/lead/service"
)

type LeadCtrl struct{ svc service.LeadService }

func New(svc service.LeadService) *LeadCtrl { return &LeadCtrl{svc: svc} }

// List accepts ?search= and ?status=frio|morno|quente|all.
func (h *LeadCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	list, err := h.svc.List(uid, repository.Filter{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LeadCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var in entities.Lead
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in.LeadID = 0
	out, err := h.svc.Save(c.Request().Context(), uid, &in)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *LeadCtrl) Update(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var in entities.Lead
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in.LeadID = uint(id)
	out, err := h.svc.Save(c.Request().Context(), uid, &in)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LeadCtrl) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), uid, uint(id)); err != nil {
		return apperr.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LeadCtrl) Stats(c echo.Context) error {
	uid := c.Get("uid").(string)
	st, err := h.svc.Stats(uid)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, st)
}
