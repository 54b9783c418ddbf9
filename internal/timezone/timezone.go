package timezone

import "time"

// O deployment opera em um único fuso, configurável via TIMEZONE.
const FallbackTimezone = "America/Sao_Paulo"

var defaultTZ = FallbackTimezone

// Init fixa o fuso do deployment. Valores inválidos são ignorados e o
// fallback permanece.
func Init(tz string) {
	if IsValid(tz) {
		defaultTZ = tz
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location() *time.Location {
	loc, err := time.LoadLocation(defaultTZ)
	if err != nil {
		return time.Local
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}
