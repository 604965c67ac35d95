package emailsvc

import (
	"bytes"
	"net/mail"
	"testing"
	texttmpl "text/template"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
)

var testConf = &core.Config{
	AppName:          "Shule",
	DefaultFromEmail: mail.Address{Name: "Shule", Address: "noreply@shule.test"},
}

func TestConsoleService_sendMessage(t *testing.T) {
	tmpl := texttmpl.Must(texttmpl.New("t").Parse("Hello {{.}}"))
	to := []mail.Address{{Name: "Faith Namugga", Address: "f.namugga@school.edu.ug"}}

	tests := []struct {
		name     string
		msg      core.EmailMessage
		wantSent bool
		wantErr  bool
		wantOut  []string
	}{
		{name: "no recipients", msg: core.EmailMessage{Subject: "Hi", BodyStr: "body"}},
		{name: "no content", msg: core.EmailMessage{To: to, Subject: "Hi"}},
		{
			name: "plain body", msg: core.EmailMessage{To: to, Subject: "Hi", BodyStr: "body"}, wantSent: true,
			wantOut: []string{"Subject: [Shule] Hi\r\n", `To: "Faith Namugga" <f.namugga@school.edu.ug>`, "body\r\n"},
		},
		{
			name: "template", msg: core.EmailMessage{To: to, Subject: "Hi", Template: tmpl, TemplateData: "Faith"}, wantSent: true,
			wantOut: []string{"From: \"Shule\" <noreply@shule.test>\r\n", "Hello Faith\r\n"},
		},
		{
			name:    "template error",
			msg:     core.EmailMessage{To: to, Template: texttmpl.Must(texttmpl.New("t").Parse("{{.Missing}}")), TemplateData: 1},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			svc := &consoleService{defaultFromEmail: testConf.DefaultFromEmail, subjPrefix: "[Shule] ", out: &out}

			msg := tt.msg
			sent, err := svc.sendMessage(&msg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("sendMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.wantSent, sent)
			if !tt.wantSent {
				assert.Empty(t, out.String())
			}
			for _, s := range tt.wantOut {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestConsoleServiceMock(t *testing.T) {
	svc := NewConsoleServiceMock(testConf)
	to := []mail.Address{{Address: "a@b.c"}}

	svc.SendMessages(
		&core.EmailMessage{To: to, Subject: "one", BodyStr: "1"},
		&core.EmailMessage{Subject: "skipped", BodyStr: "2"},
		&core.EmailMessage{To: to, Subject: "three", BodyStr: "3"},
	)

	sent := svc.SentMessages()
	if assert.Len(t, sent, 2) {
		assert.Equal(t, "one", sent[0].Subject)
		assert.Equal(t, "3", sent[1].TextContent)
	}

	svc.Reset()
	assert.Empty(t, svc.SentMessages())
}

func TestSendgridService_prepare(t *testing.T) {
	svc := NewSendgridService(testConf, nil).(*sendgridService)

	m := svc.prepare(core.EmailMessage{
		To:          []mail.Address{{Name: "A", Address: "a@b.c"}},
		Cc:          []mail.Address{{Address: "cc@b.c"}},
		Subject:     "Hi",
		TextContent: "body",
	})

	assert.Equal(t, "noreply@shule.test", m.From.Address)
	if assert.Len(t, m.Personalizations, 1) {
		p := m.Personalizations[0]
		assert.Equal(t, "[Shule] Hi", p.Subject)
		assert.Equal(t, "a@b.c", p.To[0].Address)
		assert.Equal(t, "cc@b.c", p.CC[0].Address)
	}
	if assert.Len(t, m.Content, 1) {
		assert.Equal(t, "body", m.Content[0].Value)
	}
}
