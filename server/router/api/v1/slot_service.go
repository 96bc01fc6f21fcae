package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/hrygo/meetcal/internal/timefmt"
	cerrors "github.com/hrygo/meetcal/internal/errors"
	"github.com/hrygo/meetcal/server/service/calendar"
)

// listSlots handles GET /api/v1/slots/:username.
func (s *APIV1Service) listSlots(c echo.Context) error {
	env, err := s.CalendarService.GetSlots(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return respond(c, env)
}

// addSlots handles POST /api/v1/slots/:username with form fields "from" and
// "to" holding ISO 8601 instants. Parsing happens here at the edge; the
// service only ever sees typed instants.
func (s *APIV1Service) addSlots(c echo.Context) error {
	username := c.Param("username")

	from, err := timefmt.Parse(c.FormValue("from"))
	if err != nil {
		return respondBadRequest(c, calendar.Failure(cerrors.InvalidArgument("invalid 'from' instant: expected ISO 8601")))
	}
	to, err := timefmt.Parse(c.FormValue("to"))
	if err != nil {
		return respondBadRequest(c, calendar.Failure(cerrors.InvalidArgument("invalid 'to' instant: expected ISO 8601")))
	}

	env, err := s.CalendarService.AddSlots(c.Request().Context(), username, from, to)
	if err != nil {
		return err
	}
	return respond(c, env)
}
