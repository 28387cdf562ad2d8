package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/models"
	"github.com/greencycle/wastetrack/server/response"
	"github.com/greencycle/wastetrack/services"
)

func (s *Server) handleSubmitReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input services.SubmitReportInput
		if err := decode(c, &input); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		report, err := s.ReportService.SubmitReport(userID, input)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "Report submitted", http.StatusCreated, report, nil)
	}
}

func (s *Server) handleGetRecentReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		tasks, err := s.ReportService.ListTasks(limit)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, tasks, nil)
	}
}

func (s *Server) handleGetCollectionTasks() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		tasks, err := s.ReportService.ListTasks(limit)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, tasks, nil)
	}
}

func (s *Server) handleGetMyReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		reports, err := s.ReportService.ListReportsByUser(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, reports, nil)
	}
}

func (s *Server) handleGetPendingReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := s.ReportService.ListPendingReports()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, reports, nil)
	}
}

func (s *Server) handleUpdateTaskStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		reportID, err := strconv.ParseUint(c.Param("reportID"), 10, 32)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		body := struct {
			Status string `json:"status" binding:"required"`
			Claim  bool   `json:"claim"`
		}{}
		if err := decode(c, &body); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		var collectorID *uint
		if body.Claim {
			collectorID = &userID
		}

		report, err := s.ReportService.UpdateTaskStatus(uint(reportID), body.Status, collectorID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "Task status updated", http.StatusOK, report, nil)
	}
}

// handleVerifyCollection records the verified collection, then grants the
// collector their points through the ledger. The two effects are sequenced
// here; a grant failure after a recorded collection is surfaced to the caller.
func (s *Server) handleVerifyCollection() gin.HandlerFunc {
	return func(c *gin.Context) {
		collectorID, ok := currentUserID(c)
		if !ok {
			return
		}

		reportID, err := strconv.ParseUint(c.Param("reportID"), 10, 32)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		body := struct {
			VerificationResult string `json:"verification_result" binding:"required"`
			Notes              string `json:"notes"`
		}{}
		if err := decode(c, &body); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if _, err := s.ReportService.UpdateTaskStatus(uint(reportID), models.ReportStatusVerified, nil); err != nil {
			response.HandleErrors(c, err)
			return
		}

		collected, err := s.ReportService.RecordCollection(uint(reportID), collectorID, body.VerificationResult, body.Notes)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		if _, err := s.LedgerService.GrantPoints(collectorID, s.Config.CollectPoints,
			models.TransactionEarnedCollect, "Points earned for collecting waste"); err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "Collection verified", http.StatusCreated, collected, nil)
	}
}

func (s *Server) handleGetMyCollections() gin.HandlerFunc {
	return func(c *gin.Context) {
		collectorID, ok := currentUserID(c)
		if !ok {
			return
		}
		collections, err := s.ReportService.ListCollectionsByCollector(collectorID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, collections, nil)
	}
}
