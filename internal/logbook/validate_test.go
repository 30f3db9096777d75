package logbook

import "testing"

func validInput() Input {
	return Input{
		Date:      "2024-03-05",
		FromPlace: "Depot",
		ToPlace:   "Site Office",
		Departure: "08:30 AM",
		Arrival:   "05:15 PM",
		OdoBefore: "1000",
		OdoAfter:  "1050",
		Fuel:      "12.5",
	}
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	if errs := Validate(validInput()); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	errs := Validate(Input{})
	for _, field := range []string{"date", "fromPlace", "toPlace", "departure", "arrival", "odoBefore", "odoAfter"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected %s error, got %v", field, errs)
		}
	}
}

func TestValidateOdometerCrossField(t *testing.T) {
	in := validInput()
	in.OdoBefore = "1050"
	in.OdoAfter = "1000"
	errs := Validate(in)
	if errs["odoAfter"] == "" {
		t.Fatalf("expected the cross-field error on odoAfter, got %v", errs)
	}
	if _, ok := errs["odoBefore"]; ok {
		t.Fatalf("cross-field error must not land on odoBefore: %v", errs)
	}

	// Equal readings fail too.
	in.OdoAfter = "1050"
	if errs := Validate(in); errs["odoAfter"] == "" {
		t.Fatalf("expected error for equal readings, got %v", errs)
	}
}

func TestValidateOptionalQuantities(t *testing.T) {
	in := validInput()
	in.Fuel = ""
	in.Oil = ""
	if errs := Validate(in); errs != nil {
		t.Fatalf("blank fuel and oil must be fine, got %v", errs)
	}

	in.Fuel = "-1"
	if errs := Validate(in); errs["fuel"] == "" {
		t.Fatalf("expected fuel error, got %v", errs)
	}

	in = validInput()
	in.Oil = "abc"
	if errs := Validate(in); errs["oil"] == "" {
		t.Fatalf("expected oil error, got %v", errs)
	}
}
