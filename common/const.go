package common

import "time"

const (
	DefaultPageURL = "https://hub.beamable.network/modules/preregclaim"
	DefaultAPIURL  = "https://hub.beamable.network/api/claim"

	// DefaultTimeout applies to every request of a cycle.
	DefaultTimeout = 10 * time.Second

	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"
	DefaultAcceptLanguage = "zh-CN,zh;q=0.9,en;q=0.8"
)

// DefaultCookie is used when no cookie is configured anywhere else.
const DefaultCookie = `wagmi.store={"state":{"connections":{"__type":"Map","value":[]},"chainId":1,"current":null},"version":2}; ` +
	`harbor-session=s%3A8ab0da30-cd82-421b-892b-0c7be8f50387.j5UHeKRd1jsBBlJFYPfPlSgmgXWLJNbPyEanT1%2BqsNA; ` +
	`_ga=GA1.1.1722330049.1741135732; _ga_198F67P74H=GS1.1.1741135732.1.1.1741138724.0.0.0; ` +
	`_ga_GNVVWBL3J9=GS1.1.1741135734.1.1.1741138724.0.0.0`
