package models

import (
	"strings"
	"time"
)

type LeaveType string

const (
	LeaveSick   LeaveType = "SICKLEAVE"
	LeaveEarned LeaveType = "EARNEDLEAVE"
	LeaveCasual LeaveType = "CASUALLEAVE"
)

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "PENDING"
	LeaveApproved  LeaveStatus = "APPROVED"
	LeaveRejected  LeaveStatus = "REJECTED"
	LeaveCancelled LeaveStatus = "CANCELLED"
)

// ParseLeaveStatus upper-cases s and reports whether it names a known status.
func ParseLeaveStatus(s string) (LeaveStatus, bool) {
	status := LeaveStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled:
		return status, true
	default:
		return "", false
	}
}

type LeaveRequest struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     string      `gorm:"size:50;not null;index" json:"userId"`
	LeaveType  LeaveType   `gorm:"size:30;not null" json:"leaveType"`
	StartDate  Date        `gorm:"not null" json:"startDate"`
	EndDate    Date        `gorm:"not null" json:"endDate"`
	TotalDays  int         `gorm:"not null" json:"totalDays"`
	Reason     string      `gorm:"type:text" json:"reason"`
	Status     LeaveStatus `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	ApprovedBy *string     `gorm:"size:50" json:"approvedBy"`
	RejectedBy *string     `gorm:"size:50" json:"rejectedBy"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
