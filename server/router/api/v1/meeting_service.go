package v1

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// organizeMeeting handles GET /api/v1/meeting/:usernames where :usernames is
// a comma-separated list; the first entry is the interviewee, the rest are
// the interviewers.
func (s *APIV1Service) organizeMeeting(c echo.Context) error {
	usernames := strings.Split(c.Param("usernames"), ",")

	interviewee := usernames[0]
	interviewers := usernames[1:]

	env, err := s.CalendarService.OrganizeMeeting(c.Request().Context(), interviewee, interviewers)
	if err != nil {
		return err
	}
	return respond(c, env)
}
