package dto

import "github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"

type ApplyLeaveRequest struct {
	UserID    string `json:"userId" validate:"required"`
	LeaveType string `json:"leaveType" validate:"required,oneof=SICKLEAVE EARNEDLEAVE CASUALLEAVE"`
	StartDate string `json:"startDate" validate:"required,date"`
	EndDate   string `json:"endDate" validate:"required,date"`
	TotalDays int    `json:"totalDays" validate:"required,gte=1"`
	Reason    string `json:"reason" validate:"required"`
}

// LeaveStatusRequest carries a decision. ApprovedBy names the acting user and
// must exist; RejectedBy is stored as supplied.
type LeaveStatusRequest struct {
	Status     string `json:"status"`
	ApprovedBy string `json:"approvedBy"`
	RejectedBy string `json:"rejectedBy"`
}

type RejectLeaveRequest struct {
	RejectedBy string `json:"rejectedBy"`
}

// LeaveView is a leave request joined with the requester and approver.
type LeaveView struct {
	models.LeaveRequest
	User     *models.PublicProfile `json:"user"`
	Approver *models.PublicProfile `json:"approver"`
}
