package seed

import "testing"

func TestSampleDataShape(t *testing.T) {
	if len(SampleSpecialists) != 5 {
		t.Errorf("specialists = %d, want 5", len(SampleSpecialists))
	}
	if len(SampleFeedback) != 3 {
		t.Errorf("feedback = %d, want 3", len(SampleFeedback))
	}

	for _, s := range SampleSpecialists {
		if s.Name == "" || s.Specialty == "" || s.City == "" {
			t.Errorf("incomplete specialist: %+v", s)
		}
		if s.Rating < 0 || s.Rating > 5 {
			t.Errorf("%s: rating %v out of range", s.Name, s.Rating)
		}
		if s.Location.Lat == 0 || s.Location.Lng == 0 {
			t.Errorf("%s: missing location", s.Name)
		}
		if !s.Available {
			t.Errorf("%s: sample specialists start available", s.Name)
		}
	}

	for _, f := range SampleFeedback {
		if f.Rating < 1 || f.Rating > 5 {
			t.Errorf("%s: rating %d out of range", f.UserName, f.Rating)
		}
		if f.UserName == "" || f.ServiceType == "" || f.Feedback == "" {
			t.Errorf("incomplete feedback: %+v", f)
		}
	}
}
