package notice

import (
	"fmt"
	"strings"
)

// Every operator-facing warning lives here. Keep lines short; the status
// bar has one row for both channels.

func LineClosedAdmission() string {
	return "Admitted during closed hours. Confirm with the manager."
}

func LineClosedExit() string {
	return "The planned exit falls in closed hours."
}

func LineLateAdmission(until string) string {
	return fmt.Sprintf("Last admission has passed. New guests cannot enter until %s.", until)
}

func LineManualClosed() string {
	return "That entry time is in closed hours. Time not changed."
}

func LineManualLate() string {
	return "That entry time is in the late-admission window. Time not changed."
}

func LineNoSession() string {
	return "Register the entry time first."
}

func LineInvalidTime(input string) string {
	if strings.TrimSpace(input) == "" {
		return "Enter a time as HH:MM."
	}
	return fmt.Sprintf("%q is not a valid time. Use HH:MM.", input)
}

func LineRequiredMissing() string {
	return "Required order (1 drink + 1 amuse) is missing."
}

func LineExtensionShort(missing int) string {
	return fmt.Sprintf("Extension drinks/amuse are short (%d missing).", missing)
}

// ShortageText builds the shortage-channel message for a bill. It
// returns "" when every requirement is met.
func ShortageText(drinkShortage, amuseShortage, orShortage int) string {
	parts := make([]string, 0, 2)
	if drinkShortage > 0 || amuseShortage > 0 {
		parts = append(parts, LineRequiredMissing())
	}
	if orShortage > 0 {
		parts = append(parts, LineExtensionShort(orShortage))
	}
	return strings.Join(parts, " ")
}

func LineUnknownItem(category string, price int) string {
	return fmt.Sprintf("%s at %d is not on the menu.", category, price)
}
