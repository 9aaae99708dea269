package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/bigipmachine/backend/internal/models"
)

// Email templates are compiled once at startup. All bodies share the same
// dark-card layout the frontend uses.
var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "layout_top"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #1a1a2e; color: #eee; padding: 30px; border-radius: 12px;">
	<h1 style="color: #e94560; text-align: center;">🏭 The Big IP Machine</h1>
{{end}}

{{define "layout_bottom"}}
	<p style="color: #888; font-size: 12px; text-align: center; margin-top: 30px;">
		You are receiving this email because you have an account on The Big IP Machine.
		You can change your notification preferences in your account settings.
	</p>
</div>
{{end}}

{{define "verification"}}
{{template "layout_top"}}
	<h2>Verify your email address</h2>
	<p>Hi {{.Username}},</p>
	<p>Thanks for registering! Click the button below to verify your email address and activate your account.</p>
	<p style="text-align: center; margin: 30px 0;">
		<a href="{{.VerifyURL}}" style="background: #e94560; color: #fff; padding: 12px 30px; text-decoration: none; border-radius: 8px;">Verify Email</a>
	</p>
	<p>This link expires in 24 hours. If you didn't create an account, you can safely ignore this email.</p>
{{template "layout_bottom"}}
{{end}}

{{define "welcome"}}
{{template "layout_top"}}
	<h2>Welcome aboard, {{.Username}}! 🎉</h2>
	<p>Your email is verified and your creator account is ready.</p>
	<p>Here's what you can do now:</p>
	<ul>
		<li>Upload your creative work and get it protected</li>
		<li>Tokenize your intellectual property rights</li>
		<li>Track your portfolio value</li>
	</ul>
{{template "layout_bottom"}}
{{end}}

{{define "upload_success"}}
{{template "layout_top"}}
	<h2>Your upload is protected! 🎉</h2>
	<p>Hi {{.Username}},</p>
	<p><strong>{{.Data.Filename}}</strong> has been tokenized successfully.</p>
	<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
		<tr><td style="padding: 8px; border-bottom: 1px solid #333;">Category</td><td style="padding: 8px; border-bottom: 1px solid #333;">{{.Data.Category}}</td></tr>
		<tr><td style="padding: 8px; border-bottom: 1px solid #333;">Tokens created</td><td style="padding: 8px; border-bottom: 1px solid #333;">{{.Data.TokensCreated}}</td></tr>
		<tr><td style="padding: 8px; border-bottom: 1px solid #333;">Estimated value</td><td style="padding: 8px; border-bottom: 1px solid #333;">${{printf "%.2f" .Data.EstimatedValue}}</td></tr>
		<tr><td style="padding: 8px;">File size</td><td style="padding: 8px;">{{printf "%.2f" .Data.FileSizeMB}} MB</td></tr>
	</table>
	<p>Your content is now registered and listed on the marketplace.</p>
{{template "layout_bottom"}}
{{end}}

{{define "marketplace_update"}}
{{template "layout_top"}}
	<h2>{{.Headline}}</h2>
	<p>Hi {{.Username}},</p>
	<p>{{.Body}}</p>
{{template "layout_bottom"}}
{{end}}
`))

// marketplaceUpdates maps update types to their subject line, headline and
// body copy.
var marketplaceUpdates = map[string][3]string{
	"new_listing": {
		"New listings on the marketplace 🆕",
		"Fresh IP just dropped",
		"New creative works were listed on the marketplace this week. Log in to browse the latest tokenized content.",
	},
	"price_drop": {
		"Price drops on tokens you follow 📉",
		"Tokens got cheaper",
		"Some tokens on your watchlist dropped in price. Now might be a good moment to expand your portfolio.",
	},
	"trending": {
		"Trending content this week 🔥",
		"See what's trending",
		"These creative works are attracting the most token activity right now. Don't miss out.",
	},
	"general": {
		"Your marketplace digest 📬",
		"Marketplace news",
		"Here's a quick summary of what happened on the marketplace since your last visit.",
	},
}

func renderEmail(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", name, err)
	}
	return buf.String(), nil
}

type verificationEmailData struct {
	Username  string
	VerifyURL string
}

type welcomeEmailData struct {
	Username string
}

type uploadSuccessEmailData struct {
	Username string
	Data     models.UploadSuccessData
}

type marketplaceEmailData struct {
	Username string
	Headline string
	Body     string
}
