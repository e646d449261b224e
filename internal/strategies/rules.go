package strategies

import (
	"fmt"

	"socialmetrics-backend/internal/analytics"
)

// rule is one row of the decision table: a metric selector with its decline and growth variants.
type rule struct {
	metric  string
	pick    func(analytics.Report) analytics.MetricChange
	decline variant
	growth  variant
}

type variant struct {
	title          string
	description    string // %s receives the formatted percentage
	category       string
	priority       string
	implementation string
	impact         string
	actions        []string
	metrics        []string
}

var rules = []rule{
	{
		metric: "likes",
		pick:   func(r analytics.Report) analytics.MetricChange { return r.Likes },
		decline: variant{
			title:          "Boost Engagement Through Interactive Content",
			description:    "Your likes decreased by %s. Focus on creating more interactive content like polls, Q&As, and user-generated content campaigns to re-engage your audience.",
			category:       "Engagement",
			priority:       PriorityHigh,
			implementation: TimeOneToTwoWeeks,
			impact:         "15-25% increase in engagement rates",
			actions: []string{
				"Create weekly interactive polls and Q&A sessions",
				"Launch user-generated content campaigns",
				"Respond to comments within 2 hours during business hours",
			},
			metrics: []string{"Likes", "Comments", "Engagement Rate"},
		},
		growth: variant{
			title:          "Maintain Current Engagement Strategy",
			description:    "Your likes increased by %s. Continue your current engagement approach while exploring new interactive formats.",
			category:       "Engagement",
			priority:       PriorityMedium,
			implementation: TimeTwoToFourWeeks,
			impact:         "Sustained engagement growth",
			actions: []string{
				"Analyze top-performing content formats",
				"Experiment with new interactive features",
				"Maintain consistent posting schedule",
			},
			metrics: []string{"Likes", "Engagement Rate", "Reach"},
		},
	},
	{
		metric: "impressions",
		pick:   func(r analytics.Report) analytics.MetricChange { return r.Impressions },
		decline: variant{
			title:          "Increase Content Reach and Visibility",
			description:    "Your impressions decreased by %s. Optimize posting times and use trending hashtags to improve content visibility.",
			category:       "Growth",
			priority:       PriorityHigh,
			implementation: TimeOneToTwoWeeks,
			impact:         "20-30% increase in reach and impressions",
			actions: []string{
				"Analyze audience activity patterns and optimize posting times",
				"Research and use trending hashtags in your industry",
				"Cross-promote content across different platforms",
			},
			metrics: []string{"Impressions", "Reach", "Hashtag Performance"},
		},
		growth: variant{
			title:          "Scale Content Distribution Strategy",
			description:    "Your impressions increased by %s. Build on this success by expanding your content distribution strategy.",
			category:       "Growth",
			priority:       PriorityMedium,
			implementation: TimeTwoToFourWeeks,
			impact:         "Continued reach expansion",
			actions: []string{
				"Identify peak performance times and increase posting frequency",
				"Explore new content formats and platforms",
				"Develop partnerships for content amplification",
			},
			metrics: []string{"Impressions", "Reach", "Follower Growth"},
		},
	},
	{
		metric: "shares",
		pick:   func(r analytics.Report) analytics.MetricChange { return r.Shares },
		decline: variant{
			title:          "Create More Shareable Content",
			description:    "Your shares decreased by %s. Focus on creating valuable, shareable content that your audience wants to spread.",
			category:       "Content",
			priority:       PriorityHigh,
			implementation: TimeTwoToFourWeeks,
			impact:         "25-40% increase in content shares",
			actions: []string{
				"Create educational and informative content",
				"Design visually appealing infographics and quotes",
				"Develop content series that encourage sharing",
			},
			metrics: []string{"Shares", "Viral Coefficient", "Content Saves"},
		},
		growth: variant{
			title:          "Amplify Shareable Content Strategy",
			description:    "Your shares increased by %s. Continue creating shareable content while exploring new formats.",
			category:       "Content",
			priority:       PriorityMedium,
			implementation: TimeTwoToFourWeeks,
			impact:         "Sustained sharing growth",
			actions: []string{
				"Analyze most shared content for patterns",
				"Create content templates for consistent shareability",
				"Encourage sharing through call-to-actions",
			},
			metrics: []string{"Shares", "Content Performance", "Audience Growth"},
		},
	},
	{
		metric: "comments",
		pick:   func(r analytics.Report) analytics.MetricChange { return r.Comments },
		decline: variant{
			title:          "Improve Community Response Strategy",
			description:    "Your comments decreased by %s. Focus on building stronger community relationships through active engagement.",
			category:       "Community",
			priority:       PriorityMedium,
			implementation: TimeOneToTwoWeeks,
			impact:         "Stronger community relationships and loyalty",
			actions: []string{
				"Implement faster response times to comments",
				"Ask questions in posts to encourage discussion",
				"Create community-focused content and events",
			},
			metrics: []string{"Comments", "Response Rate", "Community Sentiment"},
		},
		growth: variant{
			title:          "Scale Community Engagement",
			description:    "Your comments increased by %s. Build on this community engagement success.",
			category:       "Community",
			priority:       PriorityLow,
			implementation: TimeTwoToFourWeeks,
			impact:         "Enhanced community loyalty",
			actions: []string{
				"Maintain current engagement levels",
				"Explore community-building initiatives",
				"Recognize and reward active community members",
			},
			metrics: []string{"Comments", "Community Growth", "User Retention"},
		},
	},
}

var optimizationStrategy = Strategy{
	Title:              "Implement Data-Driven Content Optimization",
	Description:        "Use performance analytics to continuously improve your social media strategy and content effectiveness.",
	Category:           "Analytics",
	Priority:           PriorityLow,
	ImplementationTime: TimeThreePlusMonths,
	ExpectedImpact:     "Long-term strategic improvements",
	ActionItems: []string{
		"Set up comprehensive analytics tracking",
		"Create monthly performance reports",
		"A/B test different content formats and posting times",
	},
	MetricsToTrack: []string{"Overall Performance Score", "Content ROI", "Audience Growth Rate"},
}

// RuleBased derives five strategies from the aggregated report. It never fails.
func RuleBased(report analytics.Report) []Strategy {
	out := make([]Strategy, 0, SetSize)
	for i, r := range rules {
		change := r.pick(report)
		v := r.growth
		pct := change.Change
		if change.Declined() {
			v = r.decline
			pct = pct.Abs()
		}
		out = append(out, Strategy{
			ID:                 i + 1,
			Title:              v.title,
			Description:        fmt.Sprintf(v.description, pct.String()),
			Category:           v.category,
			Priority:           v.priority,
			ImplementationTime: v.implementation,
			ExpectedImpact:     v.impact,
			ActionItems:        append([]string(nil), v.actions...),
			MetricsToTrack:     append([]string(nil), v.metrics...),
		})
	}
	last := optimizationStrategy
	last.ID = len(out) + 1
	last.ActionItems = append([]string(nil), last.ActionItems...)
	last.MetricsToTrack = append([]string(nil), last.MetricsToTrack...)
	out = append(out, last)
	return out
}

// RuleBasedFromPeriods aggregates the periods, treating nil as no data.
func RuleBasedFromPeriods(p *analytics.Periods) (analytics.Report, []Strategy) {
	var periods analytics.Periods
	if p != nil {
		periods = *p
	}
	report := analytics.Aggregate(periods)
	return report, RuleBased(report)
}
