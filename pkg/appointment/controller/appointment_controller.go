package controller

import "github.com/labstack/echo/v4"

type AppointmentController interface {
	List(c echo.Context) error
	Today(c echo.Context) error
	Upcoming(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Patch(c echo.Context) error
	Delete(c echo.Context) error
}
