package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrocrm/pkg/apperr"
	"agrocrm/pkg/mix"
	"agrocrm/pkg/spray/service"
)

type SprayCtrl struct{ svc service.SprayService }

func New(svc service.SprayService) *SprayCtrl { return &SprayCtrl{svc: svc} }

type saveReq struct {
	Name string `json:"name"`
	mix.PlanRequest
}

func (h *SprayCtrl) Calculate(c echo.Context) error {
	var req mix.PlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	res, err := h.svc.Calculate(req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Create computes the plan from the submitted inputs and saves it, so a stored
// result always matches its stored request.
func (h *SprayCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req saveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	res, err := h.svc.Calculate(req.PlanRequest)
	if err != nil {
		return apperr.Respond(c, err)
	}
	calc, err := h.svc.Save(c.Request().Context(), uid, req.Name, req.PlanRequest, res)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, calc)
}

func (h *SprayCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	list, err := h.svc.List(uid)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *SprayCtrl) Get(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	calc, err := h.svc.Get(uid, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, calc)
}

func (h *SprayCtrl) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), uid, id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SprayCtrl) Export(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	doc, err := h.svc.Export(uid, id, c.QueryParam("format"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Blob(http.StatusOK, doc.ContentType, doc.Body)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}
