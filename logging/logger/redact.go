package logger

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ncobase/pagelink/logging/logger/config"
	"github.com/sirupsen/logrus"
)

var urlPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)

// Redactor is a logrus hook that masks credentials in log entries: fields
// with sensitive names, and sensitive query parameters or passwords of any
// URL found in string fields or the message.
type Redactor struct {
	fields map[string]struct{}
	params map[string]struct{}
	mask   string
}

// NewRedactor creates a redactor from configuration
func NewRedactor(cfg *config.Redaction) *Redactor {
	if cfg == nil {
		cfg = config.DefaultRedaction()
	}
	r := &Redactor{
		fields: make(map[string]struct{}, len(cfg.SensitiveFields)),
		params: make(map[string]struct{}, len(cfg.SensitiveParams)),
		mask:   strings.Repeat(cfg.MaskChar, cfg.MaskLength),
	}
	for _, f := range cfg.SensitiveFields {
		r.fields[strings.ToLower(f)] = struct{}{}
	}
	for _, p := range cfg.SensitiveParams {
		r.params[strings.ToLower(p)] = struct{}{}
	}
	return r
}

// Levels returns all log levels
func (r *Redactor) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire masks the entry in place
func (r *Redactor) Fire(entry *logrus.Entry) error {
	for k, v := range entry.Data {
		if _, ok := r.fields[strings.ToLower(k)]; ok {
			entry.Data[k] = r.mask
			continue
		}
		switch val := v.(type) {
		case string:
			entry.Data[k] = r.RedactString(val)
		case *url.URL:
			if val != nil {
				entry.Data[k] = r.RedactURL(val.String())
			}
		}
	}
	entry.Message = r.RedactString(entry.Message)
	return nil
}

// RedactString masks every URL embedded in s
func (r *Redactor) RedactString(s string) string {
	if !strings.Contains(s, "://") {
		return s
	}
	return urlPattern.ReplaceAllStringFunc(s, r.RedactURL)
}

// RedactURL masks sensitive query parameters and the password of raw
func (r *Redactor) RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	changed := false
	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), r.mask)
			changed = true
		}
	}

	q := u.Query()
	for key := range q {
		if _, ok := r.params[strings.ToLower(key)]; ok {
			q.Set(key, r.mask)
			changed = true
		}
	}
	if !changed {
		return raw
	}
	u.RawQuery = q.Encode()
	return u.String()
}
