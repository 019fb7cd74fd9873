package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
)

// FormatQuotation renders the quote document. The layout is the
// persisted/downloadable artifact: field order and labels are fixed for
// downstream consumers, so change them only with care.
func FormatQuotation(q *entity.Quote) string {
	var sb strings.Builder

	sb.WriteString("**ALCHEMY CHEMICALS - QUOTATION** 📋\n")
	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("**Product:** %s\n", q.ProductName))
	sb.WriteString(fmt.Sprintf("**Specification:** %s\n", q.Specification))
	sb.WriteString(fmt.Sprintf("**Grade:** %s\n", q.Grade))
	sb.WriteString(fmt.Sprintf("**Quantity:** %dkg\n\n", q.Quantity))

	sb.WriteString("**💰 Pricing Breakdown:**\n")
	sb.WriteString(fmt.Sprintf("• Base Price: %s/kg\n", rupees(q.BasePrice)))
	sb.WriteString(fmt.Sprintf("• Subtotal: %s\n", rupees(q.Subtotal)))
	sb.WriteString(fmt.Sprintf("• Volume Discount (%s tier): -%d%% = **-%s**\n",
		q.VolumeTier, q.VolumeDiscountPct, rupees(q.VolumeDiscountAmt)))
	sb.WriteString(fmt.Sprintf("• Grade Premium (%s): +%d%% = **+%s**\n",
		q.Grade, q.GradePremiumPct, rupees(q.GradePremiumAmt)))
	sb.WriteString(fmt.Sprintf("• Delivery (%s): **%s**\n", q.DeliveryCity, rupees(q.DeliveryCost)))
	sb.WriteString(fmt.Sprintf("• **Subtotal:** %s\n", rupees(q.SubtotalBeforeTax)))
	sb.WriteString(fmt.Sprintf("• GST (18%%): %s\n\n", rupees(q.TaxAmount)))

	sb.WriteString(fmt.Sprintf("**📍 TOTAL: %s**\n\n", rupees(q.Total)))

	sb.WriteString("**Terms & Conditions:**\n")
	sb.WriteString(fmt.Sprintf("• MOQ: %dkg\n", q.MOQ))
	sb.WriteString(fmt.Sprintf("• Lead Time: %s\n", q.LeadTime))
	sb.WriteString(fmt.Sprintf("• Quote Validity: Until %s\n", q.ValidUntil.Format("02 Jan 2006")))
	sb.WriteString("• Certifications: ISO 9001:2015, GMP, FDA\n\n")

	sb.WriteString("**For order confirmation:** info@alchemychemicals.net\n\n")
	sb.WriteString("✨ **Thank you for choosing Alchemy Chemicals!**\n")

	return sb.String()
}

// rupees renders an amount rounded to the nearest rupee with thousands
// separators, e.g. ₹185,850.
func rupees(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return "₹" + sign + strings.Join(groups, ",")
}
