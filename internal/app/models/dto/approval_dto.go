package dto

// SetApprovalRequest is the admin decision for a pending account
type SetApprovalRequest struct {
	Status string `json:"status" binding:"required" example:"APPROVED" enums:"APPROVED,REJECTED"`
}

// PendingApprovalsResponse lists student accounts awaiting a decision
type PendingApprovalsResponse struct {
	Accounts []UserResponse `json:"accounts"`
}
