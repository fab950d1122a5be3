package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/check-user", handler.CheckUser)
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/refresh", handler.AuthRequired, handler.Refresh)
	auth.Post("/forgot-password", handler.ForgotPassword)
	auth.Post("/reset-password", handler.ResetPassword)

	users := api.Group("/users", handler.AuthRequired)
	users.Get("/me", handler.Me)
	users.Patch("/me", handler.UpdateMe)
	users.Delete("/me", handler.DeleteMe)
	users.Post("/connect-partner", handler.ConnectPartner)
	users.Post("/disconnect-partner", handler.DisconnectPartner)
	users.Post("/populate-sample-data", handler.PopulateSampleData)
	users.Post("/clean-sample-data", handler.CleanSampleData)
	users.Post("/:id/invite", handler.StaffOnly, handler.InviteUser)

	needs := api.Group("/emotional-needs", handler.AuthRequired)
	needs.Post("", handler.CreateNeed)
	needs.Get("/:id", handler.GetNeed)
	needs.Delete("/:id", handler.DeleteNeed)
	needs.Get("/:id/state-history", handler.GetNeedStateHistory)

	states := api.Group("/emotional-need-states", handler.AuthRequired)
	states.Post("", handler.CreateNeedState)
	states.Put("/:id", handler.UpdateNeedState)
	states.Delete("/:id", handler.DeleteNeedState)

	letters := api.Group("/emotional-letters", handler.AuthRequired)
	letters.Get("", handler.ListLetters)
	letters.Post("", handler.SendLetter)
	letters.Get("/:id", handler.GetLetter)
	letters.Put("/:id", handler.UpdateLetter)
	letters.Delete("/:id", handler.DeleteLetter)
	letters.Put("/:id/mark-as-read", handler.MarkLetterRead)
	letters.Put("/:id/mark-as-acknowledged", handler.MarkLetterAcknowledged)

	api.Get("/appreciations", handler.AuthRequired, handler.ListAppreciations)
}
