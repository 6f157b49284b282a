package database

import (
	"context"

	"github.com/rpupo63/agency-site-backend/models"
	"gorm.io/datatypes"
)

func ptr(s string) *string { return &s }

func sampleWebsiteProjects() []models.WebsiteProject {
	return []models.WebsiteProject{
		{
			Title:       "TechStyle E-commerce",
			Description: "Modern e-commerce platform built with React and Node.js featuring advanced filtering, payment integration, and real-time inventory management.",
			Image:       "https://images.unsplash.com/photo-1563013544-824ae1b704d3?auto=format&fit=crop&w=800&h=400",
			DemoURL:     "#",
			GithubURL:   "#",
			Order:       "1",
		},
		{
			Title:       "DataViz Analytics Platform",
			Description: "Comprehensive analytics dashboard with real-time data visualization, custom reporting, and team collaboration features.",
			Image:       "https://images.unsplash.com/photo-1551650975-87deedd944c3?auto=format&fit=crop&w=800&h=400",
			DemoURL:     "#",
			GithubURL:   "#",
			Order:       "2",
		},
		{
			Title:       "Gourmet Bistro Website",
			Description: "Elegant restaurant website with online reservation system, menu management, and integrated payment processing for orders.",
			Image:       "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?auto=format&fit=crop&w=800&h=400",
			DemoURL:     "#",
			GithubURL:   "#",
			Order:       "3",
		},
	}
}

func sampleVideoProjects() []models.VideoProject {
	return []models.VideoProject{
		{
			Title:       "Tech Startup Launch Campaign",
			Description: "Dynamic promotional video featuring motion graphics, brand storytelling, and product demonstrations for a cutting-edge fintech startup.",
			Duration:    "3:45 min",
			Quality:     "4K Resolution",
			Thumbnail:   "/images/video-thumb-1.jpg",
			VideoURL:    "#",
			Category:    "Promotional",
			Order:       "1",
		},
		{
			Title:       "Corporate Training Series",
			Description: "Professional training video series with animated explanations, screen recordings, and interactive elements for enterprise learning.",
			Duration:    "12 Episodes",
			Quality:     "HD Quality",
			Thumbnail:   "/images/video-thumb-2.jpg",
			VideoURL:    "#",
			Category:    "Educational",
			Order:       "2",
		},
		{
			Title:       "Product Demo Showcase",
			Description: "Sleek product demonstration video highlighting key features with cinematic visuals and professional voice-over narration.",
			Duration:    "2:30 min",
			Quality:     "4K Resolution",
			Thumbnail:   "/images/video-thumb-3.jpg",
			VideoURL:    "#",
			Category:    "Demo",
			Order:       "3",
		},
	}
}

func sampleSocialProjects() []models.SocialProject {
	videos := datatypes.JSONSlice[models.SocialVideo]{
		{Name: "Video #1", Views: "2.4M views"},
		{Name: "Video #2", Views: "1.8M views"},
		{Name: "Video #3", Views: "3.1M views"},
	}
	return []models.SocialProject{
		{
			Platform:    "Instagram",
			Title:       "Fashion Brand Campaign",
			Description: "Creative Instagram campaign showcasing fashion brand with high engagement and follower growth.",
			Icon:        "instagram",
			Image:       "https://images.unsplash.com/photo-1445205170230-053b83016050?auto=format&fit=crop&w=200&h=200",
			Images: datatypes.JSONSlice[string]{
				"https://images.unsplash.com/photo-1445205170230-053b83016050?auto=format&fit=crop&w=200&h=200",
				"https://images.unsplash.com/photo-1483985988355-763728e1935b?auto=format&fit=crop&w=200&h=200",
				"https://images.unsplash.com/photo-1516762689617-e1cffcef479d?auto=format&fit=crop&w=200&h=200",
				"https://images.unsplash.com/photo-1581044777550-4cfa60707c03?auto=format&fit=crop&w=200&h=200",
			},
			Reach:      "2.3M",
			Engagement: "+340%",
			Metrics: datatypes.NewJSONType(map[string]string{
				"Engagement Rate":  "+340%",
				"Followers Growth": "+15.2K",
				"Campaign Reach":   "2.3M",
			}),
			Order: "1",
		},
		{
			Platform:    "LinkedIn",
			Title:       "B2B Lead Generation",
			Description: "Professional LinkedIn campaign focused on B2B lead generation with high conversion rates.",
			Icon:        "linkedin",
			Image:       "https://images.unsplash.com/photo-1611224923853-80b023f02d71?auto=format&fit=crop&w=200&h=200",
			LeadCount:   ptr("847"),
			Reach:       "125K",
			Engagement:  "12.4%",
			CampaignURL: ptr("https://linkedin.com/campaign"),
			Metrics: datatypes.NewJSONType(map[string]string{
				"Click-through Rate": "12.4%",
				"Cost per Lead":      "$28",
				"Conversion Rate":    "8.7%",
			}),
			Order: "2",
		},
		{
			Platform:    "TikTok",
			Title:       "Viral Content Series",
			Description: "Viral TikTok content series with millions of views and high engagement rates.",
			Icon:        "tiktok",
			Image:       "https://images.unsplash.com/photo-1611162616475-46b635cb6868?auto=format&fit=crop&w=200&h=200",
			Videos:      &videos,
			Reach:       "7.3M",
			Engagement:  "89.2K",
			Metrics: datatypes.NewJSONType(map[string]string{
				"Total Views": "7.3M",
				"Shares":      "89.2K",
			}),
			Order: "3",
		},
	}
}

// seedTable inserts rows only when the table is still empty.
func seedTable[T any](ctx context.Context, repo *TableRepo[T], rows []T) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i := range rows {
		if err := repo.Create(ctx, &rows[i]); err != nil {
			return i, err
		}
	}
	return len(rows), nil
}

// SeedProjects fills empty project tables with the sample catalog and returns how many rows
// were inserted. Tables that already hold projects are left alone.
func SeedProjects(ctx context.Context, d Database) (int, error) {
	total := 0
	n, err := seedTable(ctx, d.WebsiteProjectRepo(), sampleWebsiteProjects())
	total += n
	if err != nil {
		return total, err
	}
	n, err = seedTable(ctx, d.VideoProjectRepo(), sampleVideoProjects())
	total += n
	if err != nil {
		return total, err
	}
	n, err = seedTable(ctx, d.SocialProjectRepo(), sampleSocialProjects())
	total += n
	return total, err
}
