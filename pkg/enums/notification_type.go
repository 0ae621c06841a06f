package enums

import "fmt"

// NotificationType categorizes user-facing notifications.
type NotificationType string

const (
	NotificationTypePickupReminder NotificationType = "pickup_reminder"
	NotificationTypeStatusUpdate   NotificationType = "status_update"
	NotificationTypeDeliveryAlert  NotificationType = "delivery_alert"
	NotificationTypePayment        NotificationType = "payment"
	NotificationTypeGeneral        NotificationType = "general"
)

var validNotificationTypes = []NotificationType{
	NotificationTypePickupReminder,
	NotificationTypeStatusUpdate,
	NotificationTypeDeliveryAlert,
	NotificationTypePayment,
	NotificationTypeGeneral,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
