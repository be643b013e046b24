package ports

// serviceNames maps well-known TCP ports to protocol labels. Display only,
// never consulted by the scanning core.
var serviceNames = map[int]string{
	20:    "ftp-data",
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	53:    "domain",
	80:    "http",
	110:   "pop3",
	111:   "rpcbind",
	135:   "msrpc",
	139:   "netbios-ssn",
	143:   "imap",
	443:   "https",
	445:   "microsoft-ds",
	465:   "smtps",
	587:   "submission",
	631:   "ipp",
	636:   "ldaps",
	873:   "rsync",
	993:   "imaps",
	995:   "pop3s",
	1080:  "socks",
	1433:  "ms-sql-s",
	1521:  "oracle",
	1723:  "pptp",
	2049:  "nfs",
	2375:  "docker",
	3000:  "ppp",
	3128:  "squid-http",
	3306:  "mysql",
	3389:  "ms-wbt-server",
	5432:  "postgresql",
	5672:  "amqp",
	5900:  "vnc",
	6379:  "redis",
	6667:  "irc",
	8000:  "http-alt",
	8080:  "http-proxy",
	8443:  "https-alt",
	9000:  "cslistener",
	9092:  "kafka",
	9200:  "elasticsearch",
	11211: "memcached",
	27017: "mongodb",
}

// ServiceName returns the protocol label for a TCP port, or "unknown".
func ServiceName(port int) string {
	if name, ok := serviceNames[port]; ok {
		return name
	}
	return "unknown"
}
