package moderation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/akozadaev/findmydorm/internal/models"
)

// MailtoLink собирает ссылку mailto с темой и текстом заявки для администратора.
func MailtoLink(adminEmail string, sub models.PropertySubmission) string {
	subject := "New Property Listing Request: " + sub.PropertyName
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		adminEmail, escape(subject), escape(MailBody(adminEmail, sub)))
}

// MailBody формирует текст письма с деталями объекта, контактами и ценами.
func MailBody(adminEmail string, sub models.PropertySubmission) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear Admin (%s),\n\n", adminEmail)
	b.WriteString("I would like to list my property on FindMyDorm.\n\n")

	b.WriteString("--- Property Details ---\n")
	fmt.Fprintf(&b, "Owner Name: %s\n", sub.OwnerName)
	fmt.Fprintf(&b, "Property Name: %s\n", sub.PropertyName)
	fmt.Fprintf(&b, "Type: %s\n", sub.Type)
	fmt.Fprintf(&b, "City: %s\n", sub.City)
	fmt.Fprintf(&b, "Address: %s\n\n", sub.Address)

	b.WriteString("--- Contact Info ---\n")
	fmt.Fprintf(&b, "Phone: %s\n", sub.ContactPhone)
	fmt.Fprintf(&b, "Email: %s\n\n", sub.ContactEmail)

	b.WriteString("--- Description ---\n")
	b.WriteString(sub.Description + "\n\n")

	b.WriteString("--- Amenities ---\n")
	b.WriteString(strings.Join(sub.Amenities, ", ") + "\n\n")

	b.WriteString("--- Room Configurations & Pricing ---\n")
	for _, r := range sub.RoomTypes {
		fmt.Fprintf(&b, "- %s: ₹%s (%s)\n", r.Type, strconv.FormatFloat(r.Price, 'f', -1, 64), r.Description)
	}

	b.WriteString("\n---------------------------\n")
	b.WriteString("Please review my details and contact me for verification.\n")
	return b.String()
}

// escape кодирует значение параметра mailto. Пробел кодируется как %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
