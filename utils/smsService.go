package utils

import (
	"deptportal/config"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

// SendOTPToMobile pushes the reset OTP over the SMS gateway as well, for
// accounts with a registered mobile number. SMS is supplementary to the
// email channel, so callers treat failures as non-fatal.
func SendOTPToMobile(mobile, otp string) error {
	if config.AppConfig.SMSApiKey == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	// OTP and validity window in minutes, per the gateway's DLT template
	variables := fmt.Sprintf("%s|10", otp)

	client := resty.New()
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"authorization":    config.AppConfig.SMSApiKey,
			"route":            "dlt",
			"sender_id":        config.AppConfig.SMSSenderID,
			"variables_values": variables,
			"flash":            "0",
			"numbers":          mobile,
		}).
		Get("https://www.fast2sms.com/dev/bulkV2")
	if err != nil {
		log.Printf("Error while sending OTP SMS: %v", err)
		return err
	}

	if resp.StatusCode() != 200 {
		log.Printf("Failed to send OTP SMS, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP SMS, code: %d", resp.StatusCode())
	}

	return nil
}
