package payload_test

import (
	"math"
	"strings"
	"testing"

	"github.com/takimoto3/apnscodec/payload"
	"github.com/takimoto3/apnscodec/payload/liveactivity"
	"github.com/takimoto3/apnscodec/payload/numericflag"
)

func TestRatioValidate(t *testing.T) {
	tests := map[string]struct {
		ratio         payload.Ratio
		wantErrString string // If non-empty, an error is expected, and this string should be in the error message
	}{
		"zero":      {ratio: 0},
		"half":      {ratio: 0.5},
		"one":       {ratio: 1},
		"too_low":   {ratio: -0.1, wantErrString: "ratio out of range: -0.100000"},
		"too_high":  {ratio: 1.1, wantErrString: "ratio out of range: 1.100000"},
		"not_a_num": {ratio: payload.Ratio(math.NaN()), wantErrString: "ratio out of range"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.ratio.Validate()
			if err != nil {
				if tt.wantErrString == "" {
					t.Errorf("Ratio.Validate() returned unexpected error: %v", err)
				} else if !strings.Contains(err.Error(), tt.wantErrString) {
					t.Errorf("Ratio.Validate() error = %v, wantErrString '%s'", err, tt.wantErrString)
				}
			} else if tt.wantErrString != "" {
				t.Errorf("Ratio.Validate() expected an error containing %q, but got none", tt.wantErrString)
			}
		})
	}
}

func TestSumHelpers(t *testing.T) {
	if v := payload.AlertText("Hi"); v.IsDict() || v.Text != "Hi" {
		t.Errorf("AlertText() = %+v", v)
	}
	a := payload.Alert{Title: "T"}
	v := payload.AlertDict(a)
	a.Title = "changed"
	if !v.IsDict() || v.Dict.Title != "T" {
		t.Errorf("AlertDict() = %+v, want a copy with title T", v.Dict)
	}
	if s := payload.SoundName(payload.DefaultSound); s.IsDict() || s.Name != "default" {
		t.Errorf("SoundName() = %+v", s)
	}
	if s := payload.SoundDict(payload.Sound{Name: "x"}); !s.IsDict() {
		t.Errorf("SoundDict().IsDict() = false")
	}
	var nilAlert *payload.AlertValue
	var nilSound *payload.SoundValue
	if nilAlert.IsDict() || nilSound.IsDict() {
		t.Error("IsDict() on nil value = true")
	}
}

func TestAPSKinds(t *testing.T) {
	if !payload.IsAPSKey("content-state") || payload.IsAPSKey("dismissal-date") {
		t.Error("IsAPSKey() misclassified keys")
	}

	tests := map[string]struct {
		aps          payload.APS
		silent, live bool
	}{
		"empty":               {},
		"silent":              {aps: payload.APS{ContentAvailable: numericflag.New(numericflag.On)}, silent: true},
		"content-available 0": {aps: payload.APS{ContentAvailable: numericflag.New(numericflag.Off)}},
		"live update":         {aps: payload.APS{Events: liveactivity.Update}, live: true},
		"content-state only":  {aps: payload.APS{ContentState: map[string]any{}}, live: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.aps.IsSilent(); got != tt.silent {
				t.Errorf("IsSilent() = %v, want %v", got, tt.silent)
			}
			if got := tt.aps.IsLiveActivity(); got != tt.live {
				t.Errorf("IsLiveActivity() = %v, want %v", got, tt.live)
			}
		})
	}
}
