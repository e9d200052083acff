// internal/api/routes.go
// Central route registration for all API endpoints

package api

import (
	"github.com/academy-platform/tournament-engine/internal/middleware"
	"github.com/academy-platform/tournament-engine/internal/models"
	"github.com/academy-platform/tournament-engine/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers authentication-related routes
func RegisterAuthRoutes(router *gin.RouterGroup, services *services.Container) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", HandleRegister(services.Auth))
		auth.POST("/login", HandleLogin(services.Auth))
		auth.POST("/logout", middleware.RequireAuth(services.Auth), HandleLogout(services.Auth))
		auth.POST("/refresh", HandleRefreshToken(services.Auth))
		auth.POST("/forgot-password", HandleForgotPassword(services.Auth))
		auth.POST("/reset-password", HandleResetPassword(services.Auth))
		auth.POST("/verify-email", HandleVerifyEmail(services.Auth))
	}
}

// RegisterUserRoutes registers user-related routes
func RegisterUserRoutes(router *gin.RouterGroup, services *services.Container) {
	users := router.Group("/users")
	users.Use(middleware.RequireAuth(services.Auth))
	{
		users.GET("/me", HandleGetCurrentUser(services.User))
		users.PUT("/me", HandleUpdateProfile(services.User))
		users.PUT("/me/password", HandleChangePassword(services.Auth))
	}
}

// RegisterTournamentRoutes registers the full tournament-core HTTP surface
// (§6.1): tournaments, enrollment, schedule, results, finalization and
// rankings/rewards, all nested under /tournaments.
func RegisterTournamentRoutes(router *gin.RouterGroup, c *services.Container) {
	instructorOrAdmin := middleware.RequireAdminOrInstructor()
	adminOnly := middleware.RequireAnyRole(string(models.RoleAdmin))

	tournaments := router.Group("/tournaments")
	tournaments.Use(middleware.RequireAuth(c.Auth))
	{
		tournaments.POST("", adminOnly, HandleCreateTournament(c.Tournament))
		tournaments.GET("", HandleListTournaments(c.Tournament))
		tournaments.GET("/:id", HandleGetTournament(c.Tournament))
		tournaments.PATCH("/:id", adminOnly, HandleUpdateTournament(c.Tournament))
		tournaments.DELETE("/:id", adminOnly, HandleDeleteTournament(c.Tournament))
		tournaments.PATCH("/:id/status", instructorOrAdmin, HandleChangeTournamentStatus(c.Tournament))
		tournaments.GET("/:id/status-history", HandleGetStatusHistory(c.Tournament))
		tournaments.GET("/:id/summary", HandleGetTournamentSummary(c.Tournament))

		// Enrollment (roster)
		tournaments.POST("/:id/enroll", HandleEnroll(c.Enrollment))
		tournaments.DELETE("/:id/unenroll", HandleUnenroll(c.Enrollment))
		tournaments.GET("/:id/roster", HandleListRoster(c.Enrollment))
		tournaments.POST("/:id/admin/batch-enroll", adminOnly, HandleBatchEnroll(c.Enrollment))

		// Schedule
		tournaments.POST("/:id/generate-sessions", adminOnly, HandleGenerateSessions(c.Schedule))
		tournaments.GET("/:id/preview-sessions", instructorOrAdmin, HandlePreviewSessions(c.Schedule))
		tournaments.GET("/:id/sessions", HandleListSessions(c.Schedule))
		tournaments.DELETE("/:id/sessions", instructorOrAdmin, HandleDeleteSessions(c.Schedule))
		tournaments.PUT("/:id/campus-schedules/:campus_id", instructorOrAdmin, HandleUpsertCampusSchedule(c.Schedule))
		tournaments.GET("/:id/campus-schedules", HandleListCampusSchedules(c.Schedule))
		tournaments.DELETE("/:id/campus-schedules/:campus_id", instructorOrAdmin, HandleDeleteCampusSchedule(c.Schedule))
		tournaments.PATCH("/:id/schedule-config", instructorOrAdmin, HandleUpdateScheduleConfig(c.Tournament))
		tournaments.GET("/:id/schedule-config", HandleGetScheduleConfig(c.Tournament))

		// Session results and session finalization
		tournaments.POST("/:id/sessions/:sid/submit-results", instructorOrAdmin, HandleSubmitResults(c.Result))
		tournaments.PATCH("/:id/sessions/:sid/results", instructorOrAdmin, HandleSubmitResults(c.Result))
		tournaments.POST("/:id/sessions/:sid/rounds/:round/submit-results", instructorOrAdmin, HandleSubmitRound(c.Result))
		tournaments.GET("/:id/sessions/:sid/rounds", HandleGetRounds(c.Result))
		tournaments.POST("/:id/sessions/:sid/finalize", instructorOrAdmin, HandleFinalizeSession(c.Finalizer))

		// Finalization
		tournaments.POST("/:id/finalize-group-stage", instructorOrAdmin, HandleFinalizeGroupStage(c.Finalizer))
		tournaments.POST("/:id/finalize-tournament", instructorOrAdmin, HandleFinalizeTournament(c.Finalizer))

		// Rankings and rewards
		tournaments.GET("/:id/rankings", HandleListRankings(c.Finalizer))
		tournaments.POST("/:id/calculate-rankings", instructorOrAdmin, HandleCalculateRankings(c.Finalizer))
		tournaments.POST("/:id/distribute-rewards", adminOnly, HandleDistributeRewards(c.Tournament, c.RewardOrchestrator))
		tournaments.GET("/:id/distributed-rewards", HandleGetDistributedRewards(c.RewardOrchestrator))
	}
}
