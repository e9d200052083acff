// internal/api/schedule_handlers.go
// Session generation and campus schedule configuration HTTP handlers (§3.1, §4.6).

package api

import (
	"net/http"

	"github.com/academy-platform/tournament-engine/internal/models"
	"github.com/academy-platform/tournament-engine/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGenerateSessions builds and persists a tournament's full session set
func HandleGenerateSessions(scheduleService *services.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.GenerateSessionsRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		sessions, err := scheduleService.Generate(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"sessions": sessions})
	}
}

// HandlePreviewSessions runs generation without persisting, for a dry-run
func HandlePreviewSessions(scheduleService *services.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.GenerateSessionsRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		plans, err := scheduleService.Preview(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": plans})
	}
}

// HandleListSessions returns all sessions for a tournament
func HandleListSessions(scheduleService *services.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := scheduleService.ListSessions(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	}
}

// HandleDeleteSessions wipes a tournament's generated session set
func HandleDeleteSessions(scheduleService *services.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := scheduleService.DeleteSessions(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusNoContent, nil)
	}
}

// HandleUpsertCampusSchedule creates or replaces a campus's schedule override
func HandleUpsertCampusSchedule(scheduleService *services.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cfg models.CampusScheduleConfig
		if err := bindStrict(c, &cfg); err != nil {
			respondError(c, err)
			return
		}

		result, err := scheduleService.UpsertCampusSchedule(c.Request.Context(), c.Param("id"), c.Param("campus_id"), &cfg)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"campus_schedule": result})
	}
}

// HandleListCampusSchedules returns the active campus overrides for a tournament
func HandleListCampusSchedules(scheduleService *services.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		schedules, err := scheduleService.ListCampusSchedules(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"campus_schedules": schedules})
	}
}

// HandleDeleteCampusSchedule soft-deletes a campus's schedule override
func HandleDeleteCampusSchedule(scheduleService *services.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := scheduleService.DeleteCampusSchedule(c.Request.Context(), c.Param("id"), c.Param("campus_id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusNoContent, nil)
	}
}

// scheduleConfigView is the tournament-level schedule default tier of the
// §3.1 resolution order (campus row > tournament global > request param > type defaults).
type scheduleConfigView struct {
	MatchDurationMinutes int `json:"match_duration_minutes"`
	BreakDurationMinutes int `json:"break_duration_minutes"`
	ParallelFields       int `json:"parallel_fields"`
}

// HandleGetScheduleConfig returns a tournament's global schedule defaults
func HandleGetScheduleConfig(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournament, err := tournamentService.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, scheduleConfigView{
			MatchDurationMinutes: tournament.MatchDurationMinutes,
			BreakDurationMinutes: tournament.BreakDurationMinutes,
			ParallelFields:       tournament.ParallelFields,
		})
	}
}

// HandleUpdateScheduleConfig patches a tournament's global schedule defaults
func HandleUpdateScheduleConfig(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.UpdateTournamentRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		tournament, err := tournamentService.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, scheduleConfigView{
			MatchDurationMinutes: tournament.MatchDurationMinutes,
			BreakDurationMinutes: tournament.BreakDurationMinutes,
			ParallelFields:       tournament.ParallelFields,
		})
	}
}
