package service

import (
	"time"

	"github.com/gorilla/feeds"

	"github.com/pybites/insights/internal/repository"
)

const feedItemLimit = 20

// FeedService exposes the latest refined posts as an RSS feed.
type FeedService struct {
	posts   repository.PostRepository
	appName string
	appURL  string
	siteURL string
}

func NewFeedService(posts repository.PostRepository, appName, appURL, siteURL string) *FeedService {
	return &FeedService{
		posts:   posts,
		appName: appName,
		appURL:  appURL,
		siteURL: siteURL,
	}
}

func (s *FeedService) Feed() (*feeds.Feed, error) {
	posts, err := s.posts.Recent(feedItemLimit)
	if err != nil {
		return nil, err
	}

	feed := &feeds.Feed{
		Title:       s.appName,
		Link:        &feeds.Link{Href: s.appURL},
		Description: "Latest articles tracked from " + s.siteURL,
		Created:     time.Now(),
	}

	for _, post := range posts {
		var summary string
		if len(post.Content) > 0 {
			summary = post.Content[0]
		}

		feed.Items = append(feed.Items, &feeds.Item{
			Id:          post.URL,
			Title:       post.Title,
			Link:        &feeds.Link{Href: post.URL},
			Author:      &feeds.Author{Name: post.Author},
			Description: summary,
			Created:     post.DatePublished,
			Updated:     post.DateModified,
		})
	}

	return feed, nil
}
