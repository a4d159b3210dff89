/*
format.go - Indian-locale currency display

PURPOSE:
  Renders Amounts the way the finance views show them: ₹ prefix, Indian digit
  grouping (12,34,56,789), no fractional paise.

SIGN CONVENTIONS:
  Format:       -₹1,23,456 for negatives, ₹1,23,456 otherwise.
  FormatSigned: ₹+25,000 (due) / ₹-3,000 (advance) / ₹0. Used wherever the
                reader must distinguish "still owed" from "paid ahead".

ROUNDING:
  Half away from zero to whole rupees. A balance of ₹499.50 displays as ₹500.
*/
package money

import "strings"

// Format renders the amount with Indian grouping and a ₹ prefix.
func Format(a Amount) string {
	if a.IsNegative() {
		return "-₹" + groupIndian(a.Neg())
	}
	return "₹" + groupIndian(a)
}

// FormatSigned renders the amount with an explicit +/- after the ₹ symbol.
// Positive means due, negative means advance. Zero renders as ₹0.
func FormatSigned(a Amount) string {
	switch {
	case a.IsPositive():
		return "₹+" + groupIndian(a)
	case a.IsNegative():
		return "₹-" + groupIndian(a.Neg())
	default:
		return "₹0"
	}
}

// groupIndian formats a non-negative amount as whole rupees with Indian
// grouping: the last three digits form one group, every pair before that
// forms another (1234567 -> 12,34,567).
func groupIndian(a Amount) string {
	digits := a.Value.Round(0).Abs().String()
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
