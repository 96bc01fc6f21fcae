package v1

import (
	"github.com/labstack/echo/v4"
)

// registerPerson handles POST /api/v1/person/:username with form field "name".
func (s *APIV1Service) registerPerson(c echo.Context) error {
	username := c.Param("username")
	name := c.FormValue("name")

	env, err := s.CalendarService.AddUser(c.Request().Context(), username, name)
	if err != nil {
		return err
	}
	return respond(c, env)
}

// lookupPerson handles GET /api/v1/person/:username. The display name comes
// back empty for an unregistered username.
func (s *APIV1Service) lookupPerson(c echo.Context) error {
	env, err := s.CalendarService.GetUser(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return respond(c, env)
}
