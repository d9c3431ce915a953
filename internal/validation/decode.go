package validation

import (
	"errors"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/campus-match/internal/types"
	"github.com/mitchellh/mapstructure"
)

// DecodeCandidate converts a plain mapping into a CandidateProfile.
// Unknown keys are ignored and missing keys keep their zero value.
// Values of the wrong type, or values outside the declared ranges, yield an InvalidInputError.
func DecodeCandidate(record map[string]any) (*types.CandidateProfile, error) {
	if record == nil {
		return nil, &InvalidInputError{Field: "candidate", Message: "record is nil"}
	}

	var profile types.CandidateProfile
	if err := decodeRecord(record, &profile); err != nil {
		return nil, &InvalidInputError{Field: "candidate", Message: "failed to decode record", Cause: err}
	}
	if err := Candidate(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DecodeJobRequirement converts a plain mapping into a JobRequirement
func DecodeJobRequirement(record map[string]any) (*types.JobRequirement, error) {
	if record == nil {
		return nil, &InvalidInputError{Field: "job", Message: "record is nil"}
	}

	var job types.JobRequirement
	if err := decodeRecord(record, &job); err != nil {
		return nil, &InvalidInputError{Field: "job", Message: "failed to decode record", Cause: err}
	}
	if err := JobRequirement(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Candidate validates a CandidateProfile's declared ranges
func Candidate(profile *types.CandidateProfile) error {
	if profile == nil {
		return &InvalidInputError{Field: "candidate", Message: "profile is nil"}
	}
	return fromValidator("candidate", profile.Validate())
}

// JobRequirement validates a JobRequirement's declared ranges
func JobRequirement(job *types.JobRequirement) error {
	if job == nil {
		return &InvalidInputError{Field: "job", Message: "requirement is nil"}
	}
	return fromValidator("job", job.Validate())
}

// fromValidator converts the first validator failure into an InvalidInputError
func fromValidator(record string, err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &InvalidInputError{
			Field:   fe.Namespace(),
			Message: "failed on '" + fe.Tag() + "' rule",
			Cause:   err,
		}
	}
	return &InvalidInputError{Field: record, Message: "validation failed", Cause: err}
}

// decodeRecord decodes a mapping using the json tags of the target struct
func decodeRecord(record map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     out,
		DecodeHook: numberToStringHook,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(record)
}

// numberToStringHook lets numeric values fill string fields, since stored GPAs
// arrive either as text ("8.2") or as numbers (8.2).
func numberToStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(reflect.ValueOf(data).Float(), 'f', -1, 64), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(reflect.ValueOf(data).Int(), 10), nil
	}
	return data, nil
}
