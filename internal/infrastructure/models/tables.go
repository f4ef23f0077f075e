package models

func (User) TableName() string      { return "users" }
func (AdminUser) TableName() string { return "admin_users" }
func (AuditLog) TableName() string  { return "audit_logs" }
func (Offer) TableName() string     { return "offers" }
func (Deal) TableName() string      { return "deals" }
func (Report) TableName() string    { return "reports" }
