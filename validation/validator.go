// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/auth"
	"github.com/fangel123/proyek-gereja/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one failed rule. Field is the JSON path of the
// offending value, e.g. "kehadiran[1].jumlah_hadir".
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Result is the outcome of validating one request. A nil *Result means the
// request passed.
type Result struct {
	Errors []FieldError
}

func (r *Result) Error() string {
	msgs := make([]string, len(r.Errors))
	for i, fe := range r.Errors {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Add appends a rule failure that is checked outside struct tags.
func (r *Result) Add(field, tag, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Tag: tag, Message: message})
}

// AppError converts the result into a VALIDATION_ERROR carrying every
// field error in its details.
func (r *Result) AppError() *apperr.Error {
	return apperr.Validation(r.Error(), map[string]any{"fields": r.Errors})
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names instead of Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		mustRegister("strongpassword", func(fl validator.FieldLevel) bool {
			return len(auth.CheckPasswordStrength(fl.Field().String())) == 0
		})
		// bcrypt only looks at the first 72 bytes of a password
		mustRegister("maxbytes", func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			return err == nil && len(fl.Field().String()) <= limit
		})
		mustRegister("posint", func(fl validator.FieldLevel) bool {
			n, err := strconv.ParseInt(fl.Field().String(), 10, 64)
			return err == nil && n > 0
		})

		validate.RegisterStructValidation(analyticsRangeValidation, models.AnalyticsQuery{})
		validate.RegisterStructValidation(uniqueKlasifikasiValidation, models.UpsertKehadiranRequest{})
	})

	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validator: %v", tag, err))
	}
}

// analyticsRangeValidation rejects startDate > endDate. Malformed dates are
// already reported by the field rules.
func analyticsRangeValidation(sl validator.StructLevel) {
	q := sl.Current().Interface().(models.AnalyticsQuery)
	if !q.HasRange() {
		return
	}
	start, errStart := ParseDate(q.StartDate)
	end, errEnd := ParseDate(q.EndDate)
	if errStart != nil || errEnd != nil {
		return
	}
	if start.After(end) {
		sl.ReportError(q.StartDate, "startDate", "StartDate", "daterange", "endDate")
	}
}

// uniqueKlasifikasiValidation rejects a batch naming one klasifikasi twice
func uniqueKlasifikasiValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.UpsertKehadiranRequest)
	seen := make(map[int64]bool, len(req.Kehadiran))
	for _, item := range req.Kehadiran {
		if seen[item.KlasifikasiID] {
			sl.ReportError(req.Kehadiran, "kehadiran", "Kehadiran", "unique", "KlasifikasiID")
			return
		}
		seen[item.KlasifikasiID] = true
	}
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(models.DateLayout, s)
}

// Struct validates s and collects every failure. It returns nil on success.
func Struct(s any) *Result {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Result{Errors: []FieldError{{Field: "body", Tag: "invalid", Message: err.Error()}}}
	}

	res := &Result{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		field := fieldPath(fe)
		res.Errors = append(res.Errors, FieldError{
			Field:   field,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(field, fe),
		})
	}
	return res
}

// fieldPath strips the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

var messageTemplates = map[string]string{
	"required":       "%s wajib diisi",
	"email":          "%s harus berupa alamat email yang valid",
	"posint":         "%s harus berupa bilangan bulat positif",
	"strongpassword": "%s minimal 8 karakter dan memuat huruf besar, angka, serta simbol",
	"daterange":      "%s tidak boleh lebih besar dari endDate",
}

var messageWithParam = map[string]string{
	"required_with": "%s wajib diisi bersama %s",
	"oneof":         "%s harus salah satu dari: %s",
	"gt":            "%s harus lebih besar dari %s",
	"gte":           "%s harus lebih besar atau sama dengan %s",
	"maxbytes":      "%s maksimal %s byte",
	"unique":        "%s tidak boleh memuat %s yang sama lebih dari sekali",
}

func translate(field string, fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	if tmpl, ok := messageTemplates[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := messageWithParam[tag]; ok {
		return fmt.Sprintf(tmpl, field, paramName(param))
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "datetime":
		return fmt.Sprintf("%s harus berformat YYYY-MM-DD", field)
	case "min":
		if isString {
			return fmt.Sprintf("%s minimal %s karakter", field, param)
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s minimal berisi %s item", field, param)
		}
		return fmt.Sprintf("%s minimal %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s maksimal %s karakter", field, param)
		}
		return fmt.Sprintf("%s maksimal %s", field, param)
	default:
		return fmt.Sprintf("%s tidak lolos validasi %s", field, tag)
	}
}

// paramName turns Go field names in params into their JSON names.
func paramName(param string) string {
	switch param {
	case "StartDate":
		return "startDate"
	case "EndDate":
		return "endDate"
	case "KlasifikasiID":
		return "klasifikasi_id"
	}
	return strings.ReplaceAll(param, " ", ", ")
}
