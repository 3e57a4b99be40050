package oidc

import (
	"encoding/json"
	"strings"
	"time"
)

type Audience []string

func (a *Audience) UnmarshalJSON(text []byte) error {
	var i any
	err := json.Unmarshal(text, &i)
	if err != nil {
		return err
	}
	switch aud := i.(type) {
	case []any:
		*a = make([]string, 0, len(aud))
		for _, audience := range aud {
			if s, ok := audience.(string); ok {
				*a = append(*a, s)
			}
		}
	case string:
		*a = []string{aud}
	}
	return nil
}

type ResponseType string

const (
	ResponseTypeCode ResponseType = "code"
)

type SpaceDelimitedArray []string

func (s SpaceDelimitedArray) String() string {
	return strings.Join(s, " ")
}

func (s *SpaceDelimitedArray) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = nil
		return nil
	}
	*s = strings.Split(string(text), " ")
	return nil
}

func (s SpaceDelimitedArray) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Time is a point in time, encoded as seconds since the epoch.
type Time int64

func FromTime(tt time.Time) Time {
	if tt.IsZero() {
		return 0
	}
	return Time(tt.Unix())
}

func (ts Time) AsTime() time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(int64(ts), 0)
}
