package view

import (
	"context"
	"errors"
	"log"

	"inventory-spa/internal/service"
)

func landingController(auth Authenticator) InitFunc {
	return func(ctx context.Context, c *Container) error {
		if sess := c.Session(); sess != nil && sess.Username() != "" {
			c.Redirect(Dashboard)
			return nil
		}

		c.On("login", func(ctx context.Context, ev Event) error {
			resp, err := auth.Login(ctx, ev.Value("username"), ev.Value("password"))
			switch {
			case err == nil:
			case errors.Is(err, service.ErrValidation):
				c.InlineError("Username and password are required")
				return nil
			case errors.Is(err, service.ErrUserNotFound):
				c.InlineError("User not found")
				return nil
			case errors.Is(err, service.ErrInvalidCredentials):
				c.InlineError("Invalid password")
				return nil
			default:
				log.Printf("view: login: %v", err)
				c.InlineError("Server error. Try again later.")
				return nil
			}

			// The pre-login ID was handed out to an anonymous visitor.
			if err := c.Session().Regenerate(); err != nil {
				log.Printf("view: regenerate session: %v", err)
				c.InlineError("Server error. Try again later.")
				return nil
			}
			c.Session().SignIn(resp.Username, resp.Token)
			c.Redirect(Dashboard)
			return nil
		})
		return nil
	}
}
