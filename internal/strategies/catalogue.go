package strategies

import "fmt"

var (
	placeholderActions = []string{"Analyze current performance", "Implement improvements", "Monitor results"}
	placeholderMetrics = []string{"Engagement Rate", "Reach"}
)

// placeholder builds the synthetic record used to pad short result sets at position n (1-based).
func placeholder(n int) Strategy {
	return Strategy{
		ID:                 n,
		Title:              fmt.Sprintf("Additional Strategy %d", n),
		Description:        "Focus on improving overall social media performance through data-driven decisions.",
		Category:           Categories[(n-1)%len(Categories)],
		Priority:           PriorityMedium,
		ImplementationTime: TimeTwoToFourWeeks,
		ExpectedImpact:     "Enhanced social media metrics",
		ActionItems:        append([]string(nil), placeholderActions...),
		MetricsToTrack:     append([]string(nil), placeholderMetrics...),
	}
}

var catalogue = []Strategy{
	{
		ID:                 1,
		Title:              "Optimize Content Timing",
		Description:        "Analyze your audience's most active hours and schedule posts during peak engagement times to maximize reach and interaction.",
		Category:           "Content",
		Priority:           PriorityHigh,
		ImplementationTime: TimeOneToTwoWeeks,
		ExpectedImpact:     "15-25% increase in engagement rates",
		ActionItems: []string{
			"Review analytics for peak audience activity",
			"Schedule posts during high-engagement windows",
			"Test different posting times and measure results",
		},
		MetricsToTrack: []string{"Engagement Rate", "Reach", "Impressions"},
	},
	{
		ID:                 2,
		Title:              "Enhance Visual Content Strategy",
		Description:        "Develop a consistent visual brand identity and increase the use of high-quality images, videos, and graphics to improve engagement.",
		Category:           "Content",
		Priority:           PriorityHigh,
		ImplementationTime: TimeTwoToFourWeeks,
		ExpectedImpact:     "20-30% improvement in visual content engagement",
		ActionItems: []string{
			"Create brand visual guidelines",
			"Invest in quality visual content creation",
			"A/B test different visual formats",
		},
		MetricsToTrack: []string{"Engagement Rate", "Shares", "Comments"},
	},
	{
		ID:                 3,
		Title:              "Improve Community Engagement",
		Description:        "Actively respond to comments, engage with followers' content, and create interactive posts to build a stronger community.",
		Category:           "Community",
		Priority:           PriorityMedium,
		ImplementationTime: TimeOneToTwoWeeks,
		ExpectedImpact:     "Stronger community relationships and loyalty",
		ActionItems: []string{
			"Set up engagement response schedule",
			"Create interactive content (polls, Q&As)",
			"Engage with followers' content regularly",
		},
		MetricsToTrack: []string{"Comments", "Response Rate", "Community Growth"},
	},
	{
		ID:                 4,
		Title:              "Leverage User-Generated Content",
		Description:        "Encourage and showcase user-generated content to increase authenticity and community involvement.",
		Category:           "Community",
		Priority:           PriorityMedium,
		ImplementationTime: TimeTwoToFourWeeks,
		ExpectedImpact:     "Increased authenticity and community engagement",
		ActionItems: []string{
			"Create UGC campaigns and hashtags",
			"Feature customer content regularly",
			"Incentivize content creation with contests",
		},
		MetricsToTrack: []string{"UGC Submissions", "Hashtag Usage", "Community Engagement"},
	},
	{
		ID:                 5,
		Title:              "Implement Data-Driven Content Planning",
		Description:        "Use analytics to identify top-performing content types and create more of what resonates with your audience.",
		Category:           "Analytics",
		Priority:           PriorityLow,
		ImplementationTime: TimeThreePlusMonths,
		ExpectedImpact:     "More strategic and effective content creation",
		ActionItems: []string{
			"Analyze historical content performance",
			"Identify patterns in successful posts",
			"Create content calendar based on insights",
		},
		MetricsToTrack: []string{"Content Performance Score", "Engagement Trends", "Audience Growth"},
	},
}

// Catalogue returns the static general-purpose strategies used to pad short model replies.
func Catalogue() []Strategy {
	return cloneStrategies(catalogue)
}
