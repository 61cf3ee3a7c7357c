package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrayerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PrayerName
		wantErr bool
	}{
		{name: "Lowercase storage form", input: "fajr", want: Fajr},
		{name: "Capitalized display form", input: "Dhuhr", want: Dhuhr},
		{name: "Upper case with spaces", input: "  ASR ", want: Asr},
		{name: "Full-width letters", input: "ｉｓｈａ", want: Isha},
		{name: "Unknown prayer", input: "tahajjud", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrayerName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPrayer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultDayRecord(t *testing.T) {
	t.Run("Contains all five prayers unperformed", func(t *testing.T) {
		record := DefaultDayRecord()

		assert.Len(t, record, 5)
		for _, name := range PrayerNames {
			assert.Equal(t, PrayerStatus{}, record[name])
		}
	})

	t.Run("Returns a fresh map on every call", func(t *testing.T) {
		first := DefaultDayRecord()
		first[Fajr] = PrayerStatus{Performed: true}

		second := DefaultDayRecord()
		assert.False(t, second[Fajr].Performed, "mutating one default must not leak into the next")
	})
}

func TestMergeDayRecord(t *testing.T) {
	raw := DayRecord{Maghrib: {Performed: true, WithJamat: true}}

	merged := MergeDayRecord(raw)

	assert.Len(t, merged, 5)
	assert.Equal(t, PrayerStatus{Performed: true, WithJamat: true}, merged[Maghrib])
	assert.Equal(t, PrayerStatus{}, merged[Fajr])
	assert.Len(t, raw, 1, "merge must not mutate its input")
}

func TestPrayerStatus_Apply(t *testing.T) {
	yes := true
	no := false

	t.Run("Only given fields change", func(t *testing.T) {
		status := PrayerStatus{Performed: true}
		got := status.Apply(PrayerStatusPatch{WithJamat: &yes})
		assert.Equal(t, PrayerStatus{Performed: true, WithJamat: true}, got)
	})

	t.Run("Empty patch is a no-op", func(t *testing.T) {
		status := PrayerStatus{Performed: true, WithJamat: true}
		assert.Equal(t, status, status.Apply(PrayerStatusPatch{}))
		assert.True(t, PrayerStatusPatch{}.Empty())
	})

	t.Run("Both fields", func(t *testing.T) {
		got := PrayerStatus{Performed: true, WithJamat: true}.Apply(PrayerStatusPatch{Performed: &no, WithJamat: &no})
		assert.Equal(t, PrayerStatus{}, got)
	})
}

func TestDecodeDayRecord(t *testing.T) {
	t.Run("Empty value decodes to empty record", func(t *testing.T) {
		record, err := DecodeDayRecord("")
		require.NoError(t, err)
		assert.Empty(t, record)
	})

	t.Run("Normalizes keys and drops unknown ones", func(t *testing.T) {
		record, err := DecodeDayRecord(`{"Fajr":{"performed":true,"withJamat":true},"witr":{"performed":true}}`)
		require.NoError(t, err)
		assert.Equal(t, DayRecord{Fajr: {Performed: true, WithJamat: true}}, record)
	})

	t.Run("Missing fields default to false", func(t *testing.T) {
		record, err := DecodeDayRecord(`{"isha":{"performed":true}}`)
		require.NoError(t, err)
		assert.Equal(t, PrayerStatus{Performed: true}, record[Isha])
	})

	t.Run("Exact lowercase key wins over other spellings", func(t *testing.T) {
		value := `{"fajr":{"performed":true},"Fajr":{"performed":false},"FAJR":{"performed":false}}`

		for i := 0; i < 50; i++ {
			record, err := DecodeDayRecord(value)
			require.NoError(t, err)
			require.True(t, record[Fajr].Performed)
		}
	})

	t.Run("Colliding spellings resolve in sorted order", func(t *testing.T) {
		value := `{"Dhuhr":{"performed":true},"DHUHR":{"performed":false}}`

		for i := 0; i < 50; i++ {
			record, err := DecodeDayRecord(value)
			require.NoError(t, err)
			require.True(t, record[Dhuhr].Performed)
		}
	})

	t.Run("Corrupted JSON fails", func(t *testing.T) {
		_, err := DecodeDayRecord(`{not json`)
		assert.Error(t, err)
	})
}

func TestEncodeDayRecord_StorageFormat(t *testing.T) {
	value, err := EncodeDayRecord(DayRecord{Asr: {Performed: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"asr":{"performed":true,"withJamat":false}}`, value)
}

func TestDayRecord_Progress(t *testing.T) {
	record := MergeDayRecord(DayRecord{
		Fajr:  {Performed: true, WithJamat: true},
		Dhuhr: {Performed: true},
		Asr:   {Performed: false, WithJamat: true},
	})

	assert.Equal(t, 2, record.PerformedCount())
	assert.Equal(t, 1, record.JamatCount(), "jamat without performed does not count")
	assert.InDelta(t, 40.0, record.Progress(), 0.001)
	assert.False(t, record.Complete())
}

func TestPrayerName_DisplayName(t *testing.T) {
	assert.Equal(t, "Maghrib", Maghrib.DisplayName())
	assert.Equal(t, "", PrayerName("").DisplayName())
}
