// internal/workers/consultation/send-consultation-notification/models.go
package sendconsultationnotification

type Input struct {
	ConsultationID   string `json:"consultationId"`
	NotificationType string `json:"notificationType,omitempty"`
}

type Output struct {
	NotificationID     string `json:"notificationId"`
	NotificationStatus string `json:"notificationStatus"`
	EmailSent          bool   `json:"emailSent"`
	SMSSent            bool   `json:"smsSent"`
	SentAt             string `json:"sentAt"`
}
