// README: Topic enumeration assigned to every chat query.
package intent

// Topic is the coarse category of a query. Every query gets exactly one.
type Topic string

const (
	Greeting   Topic = "greeting"
	Thanks     Topic = "thanks"
	Soil       Topic = "soil"
	Irrigation Topic = "irrigation"
	Fertilizer Topic = "fertilizer"
	General    Topic = "general"
)

// Topics lists every topic in classification priority order.
var Topics = []Topic{Greeting, Thanks, Fertilizer, Soil, Irrigation, General}

// Valid reports whether t is a known topic.
func (t Topic) Valid() bool {
	for _, v := range Topics {
		if v == t {
			return true
		}
	}
	return false
}
