package recommend

import "context"

// GeneralTips is returned when no tailored advice is available.
var GeneralTips = Result{
	Intro: "Here are some general tips to get you started.",
	Items: []Item{
		{Area: "General", Advice: "Review your subscriptions and cancel any you don't use."},
		{Area: "Groceries", Advice: "Try own-brand products."},
		{Area: "Eating Out", Advice: "Pack lunch once a week."},
	},
}

// Unavailable is returned when the provider could not be reached.
var Unavailable = Result{
	Intro: "Could not fetch AI tips at the moment.",
	Items: []Item{
		{Area: "Error", Advice: "There was an issue connecting to the AI. Please try again later."},
	},
}

// StaticProvider always answers with the same result, GeneralTips when unset.
// Advice already completed is left out.
type StaticProvider struct {
	Result Result
}

// Recommend returns the fixed result.
func (p StaticProvider) Recommend(_ context.Context, req Request) (Result, error) {
	r := p.Result
	if len(r.Items) == 0 {
		r = GeneralTips
	}
	return withoutCompleted(r, req.Completed), nil
}

func withoutCompleted(r Result, completed []string) Result {
	done := make(map[string]bool, len(completed))
	for _, c := range completed {
		done[c] = true
	}
	items := make([]Item, 0, len(r.Items))
	for _, item := range r.Items {
		if !done[item.Advice] {
			items = append(items, item)
		}
	}
	r.Items = items
	return r
}
