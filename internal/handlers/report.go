package handlers

import (
	"net/http"
	"time"

	"edusphere/internal/db"
	"edusphere/internal/middleware"
	"edusphere/internal/models"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct{}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

type reportCreateRequest struct {
	ReporteeID uint   `json:"reportee_id" binding:"required"`
	ThreadID   *uint  `json:"thread_id"`
	ReplyID    *uint  `json:"reply_id"`
	Reason     string `json:"reason" binding:"required"`
	Details    string `json:"details"`
}

type reportView struct {
	ID                 uint      `json:"id"`
	ReporterID         uint      `json:"reporter_id"`
	ReporterName       string    `json:"reporter_name"`
	ReporterRollNumber string    `json:"reporter_roll_number"`
	ReporteeID         uint      `json:"reportee_id"`
	ReporteeName       string    `json:"reportee_name"`
	ReporteeRollNumber string    `json:"reportee_roll_number"`
	ThreadID           *uint     `json:"thread_id"`
	ReplyID            *uint     `json:"reply_id"`
	Reason             string    `json:"reason"`
	Details            string    `json:"details"`
	CreatedAt          time.Time `json:"created_at"`
}

func (h *ReportHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req reportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	var count int64
	db.DB.Model(&models.User{}).Where("id = ?", req.ReporteeID).Count(&count)
	if count == 0 {
		Error(c, http.StatusNotFound, "Reported user not found")
		return
	}

	report := models.Report{
		ReporterID: user.ID,
		ReporteeID: req.ReporteeID,
		ThreadID:   req.ThreadID,
		ReplyID:    req.ReplyID,
		Reason:     req.Reason,
		Details:    req.Details,
	}
	if err := db.DB.Create(&report).Error; err != nil {
		Error(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Report created successfully", "report": report})
}

// List returns every report with reporter/reportee identities, staff only
func (h *ReportHandler) List(c *gin.Context) {
	var reports []models.Report
	if err := db.DB.Preload("Reporter").Preload("Reportee").
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		Error(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	out := make([]reportView, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportView(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) Get(c *gin.Context) {
	var report models.Report
	if err := db.DB.Preload("Reporter").Preload("Reportee").
		First(&report, "id = ?", c.Param("id")).Error; err != nil {
		Error(c, http.StatusNotFound, "Report not found")
		return
	}
	c.JSON(http.StatusOK, toReportView(report))
}

func toReportView(r models.Report) reportView {
	return reportView{
		ID:                 r.ID,
		ReporterID:         r.ReporterID,
		ReporterName:       r.Reporter.Name,
		ReporterRollNumber: r.Reporter.RollNumber,
		ReporteeID:         r.ReporteeID,
		ReporteeName:       r.Reportee.Name,
		ReporteeRollNumber: r.Reportee.RollNumber,
		ThreadID:           r.ThreadID,
		ReplyID:            r.ReplyID,
		Reason:             r.Reason,
		Details:            r.Details,
		CreatedAt:          r.CreatedAt,
	}
}
