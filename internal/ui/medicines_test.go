package ui

import (
	"testing"

	"pillterm/internal/api"
	"pillterm/internal/sched"
)

func TestFilterByBucket(t *testing.T) {
	medicines := []api.Medicine{
		{ID: 1, Name: "Morning med"},
		{ID: 2, Name: "Evening med"},
		{ID: 3, Name: "All day med"},
		{ID: 4, Name: "No schedule med"},
	}
	schedules := []api.Schedule{
		{ID: 10, MedicineID: 1, DoseTime: "08:00:00"},
		{ID: 11, MedicineID: 2, DoseTime: "20:00:00"},
		{ID: 12, MedicineID: 3, DoseTime: "08:00:00"},
		{ID: 13, MedicineID: 3, DoseTime: "12:00:00"},
		{ID: 14, MedicineID: 3, DoseTime: "19:00:00"},
	}

	tests := []struct {
		name   string
		bucket sched.Bucket
		want   []int64
	}{
		{name: "morning", bucket: sched.Morning, want: []int64{1, 3}},
		{name: "lunch", bucket: sched.Lunch, want: []int64{3}},
		{name: "dinner", bucket: sched.Dinner, want: []int64{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterByBucket(medicines, schedules, tt.bucket)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d medicines, want %d", len(got), len(tt.want))
			}
			for i, med := range got {
				if med.ID != tt.want[i] {
					t.Errorf("medicine %d = id %d, want %d", i, med.ID, tt.want[i])
				}
			}
		})
	}
}

func TestFilterByBucketSkipsUnparsableTimes(t *testing.T) {
	medicines := []api.Medicine{{ID: 1, Name: "Med"}}
	schedules := []api.Schedule{
		{ID: 10, MedicineID: 1, DoseTime: "not-a-time"},
	}

	for _, bucket := range []sched.Bucket{sched.Morning, sched.Lunch, sched.Dinner} {
		if got := filterByBucket(medicines, schedules, bucket); len(got) != 0 {
			t.Errorf("bucket %v matched %d medicines, want 0", bucket, len(got))
		}
	}
}

func TestDoseTimesByMedicine(t *testing.T) {
	schedules := []api.Schedule{
		{ID: 1, MedicineID: 5, DoseTime: "20:00:00"},
		{ID: 2, MedicineID: 5, DoseTime: "08:00:00"},
		{ID: 3, MedicineID: 6, DoseTime: "garbled"},
	}

	got := doseTimesByMedicine(schedules)

	if want := []string{"08:00", "20:00"}; len(got[5]) != 2 || got[5][0] != want[0] || got[5][1] != want[1] {
		t.Errorf("times for medicine 5 = %v, want %v", got[5], want)
	}
	if len(got[6]) != 0 {
		t.Errorf("garbled time produced entries: %v", got[6])
	}
}

func TestMedicineTabCycle(t *testing.T) {
	if medicineTabs[0] != tabAll {
		t.Fatal("first tab is not All")
	}
	if _, ok := tabAll.bucket(); ok {
		t.Error("All tab should not have a bucket")
	}
	for _, tab := range medicineTabs[1:] {
		if _, ok := tab.bucket(); !ok {
			t.Errorf("tab %q has no bucket", tab.label())
		}
	}
}
