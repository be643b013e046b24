package banner

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/tongchengbin/portscan/pkg/ports"
)

// servicePatterns are keyword heuristics matched against banner text, in
// priority order. First match wins.
var servicePatterns = []struct {
	regex   *regexp2.Regexp
	service string
}{
	{regexp2.MustCompile(`^SSH-`, regexp2.IgnoreCase), "ssh"},
	{regexp2.MustCompile(`nginx`, regexp2.IgnoreCase), "nginx"},
	{regexp2.MustCompile(`apache`, regexp2.IgnoreCase), "apache"},
	{regexp2.MustCompile(`microsoft-iis`, regexp2.IgnoreCase), "iis"},
	{regexp2.MustCompile(`tomcat`, regexp2.IgnoreCase), "tomcat"},
	{regexp2.MustCompile(`\b(postfix|exim|esmtp|smtp)\b`, regexp2.IgnoreCase), "smtp"},
	{regexp2.MustCompile(`dovecot`, regexp2.IgnoreCase), "imap/pop3"},
	{regexp2.MustCompile(`\bimap\b`, regexp2.IgnoreCase), "imap"},
	{regexp2.MustCompile(`\bpop3\b`, regexp2.IgnoreCase), "pop3"},
	{regexp2.MustCompile(`\bftp\b`, regexp2.IgnoreCase), "ftp"},
	{regexp2.MustCompile(`mysql|mariadb`, regexp2.IgnoreCase), "mysql"},
	{regexp2.MustCompile(`postgres`, regexp2.IgnoreCase), "postgresql"},
	{regexp2.MustCompile(`redis`, regexp2.IgnoreCase), "redis"},
	{regexp2.MustCompile(`^HTTP/\d`, regexp2.IgnoreCase), "http"},
}

// DetectService combines the static port table with banner keyword matching.
// The table gives the base label; a banner match refines or replaces it.
func DetectService(port int, bannerText string) string {
	base := ports.ServiceName(port)
	if bannerText == "" {
		return base
	}
	for _, p := range servicePatterns {
		if ok, _ := p.regex.MatchString(bannerText); ok {
			if base != "unknown" && base != p.service {
				return fmt.Sprintf("%s (%s)", base, p.service)
			}
			return p.service
		}
	}
	return base
}
