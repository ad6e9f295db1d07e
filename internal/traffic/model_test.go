package traffic

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/internal/models"
)

func TestClassifyCondition(t *testing.T) {
	bands := config.DefaultTables().ConditionBands

	tests := []struct {
		name  string
		count int
		want  models.Condition
	}{
		{"zero", 0, models.ConditionSmooth},
		{"upper edge of smooth", 99, models.ConditionSmooth},
		{"lower edge of moderate", 100, models.ConditionModerate},
		{"heavy", 200, models.ConditionHeavy},
		{"very heavy", 350, models.ConditionVeryHeavy},
		{"gridlock", 500, models.ConditionGridlock},
		{"beyond last band", 12000, models.ConditionGridlock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCondition(bands, tt.count); got != tt.want {
				t.Errorf("ClassifyCondition(%d) = %v, want %v", tt.count, got, tt.want)
			}
		})
	}
}

func TestConditionBandsExhaustive(t *testing.T) {
	bands := config.DefaultTables().ConditionBands

	if bands[0].Low != 0 {
		t.Errorf("first band starts at %d, want 0", bands[0].Low)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].Low != bands[i-1].High {
			t.Errorf("gap or overlap between band %d and %d: %d != %d",
				i-1, i, bands[i-1].High, bands[i].Low)
		}
	}

	// Every count maps to exactly one band or the fallback.
	for count := 0; count <= 15000; count++ {
		matches := 0
		for _, band := range bands {
			if count >= band.Low && count < band.High {
				matches++
			}
		}
		if count < bands[len(bands)-1].High && matches != 1 {
			t.Fatalf("count %d matched %d bands, want 1", count, matches)
		}
		if count >= bands[len(bands)-1].High && matches != 0 {
			t.Fatalf("count %d beyond last band matched %d bands, want 0", count, matches)
		}
	}
}

func TestComputeSpeedClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	tests := []struct {
		name       string
		count      int
		rainFactor float64
	}{
		{"empty road", 0, 1.0},
		{"light", 50, 1.0},
		{"dense", 500, 1.0},
		{"dense in extreme rain", 900, 2.0},
		{"absurd count", 100000, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				speed := ComputeSpeed(rng, tt.count, tt.rainFactor)
				if speed < 5.0 || speed > 60.0 {
					t.Fatalf("ComputeSpeed(%d, %v) = %v, outside [5, 60]", tt.count, tt.rainFactor, speed)
				}
			}
		})
	}
}

func TestComputeSpeedRounded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		speed := ComputeSpeed(rng, 120, 1.3)
		if speed*10 != float64(int(speed*10)) {
			t.Fatalf("speed %v not rounded to 1 decimal", speed)
		}
	}
}

func TestIsPeakHour(t *testing.T) {
	peaks := map[int]bool{6: true, 7: true, 8: true, 16: true, 17: true, 18: true}
	for hour := 0; hour < 24; hour++ {
		if got := IsPeakHour(hour); got != peaks[hour] {
			t.Errorf("IsPeakHour(%d) = %v, want %v", hour, got, peaks[hour])
		}
	}
}

func TestRainImpactMonotonic(t *testing.T) {
	impact := config.DefaultTables().RainImpact
	order := []models.RainCategory{
		models.RainNone, models.RainLight, models.RainModerate,
		models.RainHeavy, models.RainExtreme,
	}

	if impact[models.RainNone] != 1.0 {
		t.Errorf("rain factor for none = %v, want 1.0", impact[models.RainNone])
	}
	if impact[models.RainExtreme] != 2.0 {
		t.Errorf("rain factor for extreme = %v, want 2.0", impact[models.RainExtreme])
	}
	for i := 1; i < len(order); i++ {
		if impact[order[i]] < impact[order[i-1]] {
			t.Errorf("rain impact not monotonic: %s=%v < %s=%v",
				order[i], impact[order[i]], order[i-1], impact[order[i-1]])
		}
	}
}

func TestDayIndex(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		want    int
		weekend bool
	}{
		{"monday", time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC), 0, false},
		{"friday", time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC), 4, false},
		{"saturday", time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC), 5, true},
		{"sunday", time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayIndex(tt.date); got != tt.want {
				t.Errorf("DayIndex = %d, want %d", got, tt.want)
			}
			if got := IsWeekend(tt.date); got != tt.weekend {
				t.Errorf("IsWeekend = %v, want %v", got, tt.weekend)
			}
		})
	}
}
