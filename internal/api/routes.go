package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", handler.Register)
	authGroup.Post("/login", handler.Login)
	authGroup.Get("/me", handler.AuthRequired, handler.Me)
	authGroup.Patch("/me", handler.AuthRequired, handler.UpdateProfile)

	records := api.Group("/health-records", handler.AuthRequired)
	records.Post("", handler.CreateHealthRecord)
	records.Get("", handler.ListHealthRecords)
	records.Get("/:id", handler.GetHealthRecord)
	records.Patch("/:id", handler.UpdateHealthRecord)
	records.Delete("/:id", handler.DeleteHealthRecord)

	medications := api.Group("/medications", handler.AuthRequired)
	medications.Post("", handler.CreateMedication)
	medications.Get("", handler.ListMedications)
	medications.Get("/:id", handler.GetMedication)
	medications.Patch("/:id", handler.UpdateMedication)
	medications.Delete("/:id", handler.DeactivateMedication)

	moods := api.Group("/moods", handler.AuthRequired)
	moods.Post("", handler.CreateMoodRecord)
	moods.Get("", handler.ListMoodRecords)
	moods.Get("/stats", handler.MoodStats)
	moods.Get("/:id", handler.GetMoodRecord)
	moods.Delete("/:id", handler.DeleteMoodRecord)

	sleep := api.Group("/sleep-records", handler.AuthRequired)
	sleep.Post("", handler.CreateSleepRecord)
	sleep.Get("", handler.ListSleepRecords)
	sleep.Get("/statistics", handler.SleepStatistics)
	sleep.Get("/:id", handler.GetSleepRecord)
	sleep.Delete("/:id", handler.DeleteSleepRecord)

	meals := api.Group("/meals", handler.AuthRequired)
	meals.Post("", handler.CreateMeal)
	meals.Get("", handler.ListMeals)
	meals.Get("/:id", handler.GetMeal)
	meals.Patch("/:id", handler.UpdateMeal)
	meals.Delete("/:id", handler.DeleteMeal)

	mental := api.Group("/mental-health", handler.AuthRequired)
	mental.Post("", handler.CreateMentalHealthCheck)
	mental.Get("", handler.ListMentalHealthChecks)
	mental.Get("/:id", handler.GetMentalHealthCheck)

	chat := api.Group("/chat", handler.AuthRequired)
	chat.Post("/symptom-check", handler.SymptomCheck)
	chat.Get("/history", handler.ChatHistory)

	meditation := api.Group("/meditation-sessions", handler.AuthRequired)
	meditation.Post("", handler.CreateMeditationSession)
	meditation.Get("", handler.ListMeditationSessions)
	meditation.Delete("/:id", handler.DeleteMeditationSession)

	music := api.Group("/music-sessions", handler.AuthRequired)
	music.Post("", handler.CreateMusicSession)
	music.Get("", handler.ListMusicSessions)
	music.Delete("/:id", handler.DeleteMusicSession)

	diseases := api.Group("/diseases", handler.AuthRequired)
	diseases.Post("", handler.CreateDiseaseRecord)
	diseases.Get("", handler.ListDiseaseRecords)
	diseases.Get("/:id", handler.GetDiseaseRecord)
	diseases.Patch("/:id", handler.UpdateDiseaseRecord)
	diseases.Delete("/:id", handler.DeleteDiseaseRecord)
	diseases.Post("/:id/treatment-plans", handler.CreateTreatmentPlan)
	diseases.Post("/:id/treatment-plans/generate", handler.GenerateTreatmentPlan)
	diseases.Get("/:id/treatment-plans", handler.ListTreatmentPlans)
	diseases.Patch("/:id/treatment-plans/:planID", handler.UpdateTreatmentPlan)
	diseases.Delete("/:id/treatment-plans/:planID", handler.DeleteTreatmentPlan)
	diseases.Post("/:id/checklists", handler.CreateChecklist)
	diseases.Get("/:id/checklists", handler.ListChecklists)
	diseases.Patch("/:id/checklists/:checklistID", handler.UpdateChecklist)
	diseases.Delete("/:id/checklists/:checklistID", handler.DeleteChecklist)
	diseases.Post("/:id/progress-logs", handler.CreateProgressLog)
	diseases.Get("/:id/progress-logs", handler.ListProgressLogs)
	diseases.Get("/:id/progress-logs/statistics", handler.ProgressStatistics)

	pregnancies := api.Group("/pregnancies", handler.AuthRequired)
	pregnancies.Post("", handler.CreatePregnancyRecord)
	pregnancies.Get("", handler.ListPregnancyRecords)
	pregnancies.Get("/:id", handler.GetPregnancyRecord)
	pregnancies.Patch("/:id", handler.UpdatePregnancyRecord)
	pregnancies.Delete("/:id", handler.DeletePregnancyRecord)
	pregnancies.Post("/:id/prenatal-cares", handler.CreatePrenatalCare)
	pregnancies.Get("/:id/prenatal-cares", handler.ListPrenatalCares)
	pregnancies.Post("/:id/logs", handler.CreatePregnancyLog)
	pregnancies.Get("/:id/logs", handler.ListPregnancyLogs)

	postpartum := api.Group("/postpartum-cares", handler.AuthRequired)
	postpartum.Post("", handler.CreatePostpartumCare)
	postpartum.Get("", handler.ListPostpartumCares)
	postpartum.Get("/:id", handler.GetPostpartumCare)
	postpartum.Patch("/:id", handler.UpdatePostpartumCare)

	children := api.Group("/children", handler.AuthRequired)
	children.Post("", handler.CreateChild)
	children.Get("", handler.ListChildren)
	children.Get("/:id", handler.GetChild)
	children.Patch("/:id", handler.UpdateChild)
	children.Delete("/:id", handler.DeleteChild)
	children.Post("/:id/growth-records", handler.CreateGrowthRecord)
	children.Get("/:id/growth-records", handler.ListGrowthRecords)
	children.Post("/:id/development-logs", handler.CreateDevelopmentLog)
	children.Get("/:id/development-logs", handler.ListDevelopmentLogs)
	children.Post("/:id/vaccinations", handler.CreateVaccination)
	children.Get("/:id/vaccinations", handler.ListVaccinations)
	children.Patch("/:id/vaccinations/:vaccinationID", handler.UpdateVaccination)

	voice := api.Group("/voice", handler.AuthRequired)
	voice.Post("/transcribe", handler.TranscribeAudio)
	voice.Post("/analyze", handler.AnalyzeVoice)
	voice.Get("/analyses", handler.ListVoiceAnalyses)
	voice.Post("/reminders", handler.CreateVoiceReminder)
	voice.Get("/reminders", handler.ListVoiceReminders)
	voice.Patch("/reminders/:id", handler.UpdateVoiceReminder)
	voice.Delete("/reminders/:id", handler.DeleteVoiceReminder)

	notifications := api.Group("/notifications", handler.AuthRequired)
	notifications.Get("", handler.ListNotifications)
	notifications.Post("/:id/read", handler.MarkNotificationRead)

	schedule := api.Group("/schedule", handler.AuthRequired)
	schedule.Post("/generate", handler.GenerateSchedule)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
