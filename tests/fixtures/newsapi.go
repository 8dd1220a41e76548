// Package fixtures provides reusable test data for the news search payload.
// It keeps the canonical response body and its decoded form in one place so
// the entity, usecase and transport tests all assert against the same data.
package fixtures

import (
	"net/url"

	"catchup-news/internal/domain/entity"
)

// TeslaNewsJSON is a recorded newsapi.org "everything" response with two articles.
// publishedAt is present on the wire but not part of the domain model.
const TeslaNewsJSON = `{
    "status": "ok",
    "totalResults": 9431,
    "articles": [
        {
            "source": {
                "id": null,
                "name": "Salon"
            },
            "author": "Robert Reich",
            "title": "Elon Musk and Jeff Bezos: the great escape",
            "description": "The rich have found ways to protect themselves from the rest of humanity",
            "url": "https://www.salon.com/2021/05/01/elon-musk-and-jeff-bezos-the-great-escape_partner/",
            "urlToImage": "https://media.salon.com/2020/11/musk-bezos-spacex-1113201.jpg",
            "publishedAt": "2021-05-02T01:00:01Z",
            "content": "Elon Musk and Jeff Bezos want to colonize outer space to save humanity, but they couldn't care less about protecting the rights of workers here on earth.\r\nMusk's SpaceX just won a $2.9 billion NAS"
        },
        {
            "source": {
                "id": null,
                "name": "Motley Fool Australia"
            },
            "author": "James Mickleboro",
            "title": "3 high quality ETFs for ASX investors in May",
            "description": "BetaShares NASDAQ 100 ETF (ASX:NDQ) and these ASX ETFs could be high quality options for investors in May...\nThe post 3 high quality ETFs for ASX investors in May appeared first on The Motley Fool Australia.",
            "url": "https://www.fool.com.au/2021/05/02/3-high-quality-etfs-for-asx-investors-in-may/",
            "urlToImage": "https://www.fool.com.au/wp-content/uploads/2021/04/asx-share-price-22.jpg",
            "publishedAt": "2021-05-02T00:30:52Z",
            "content": "If you’re looking for an easy way to invest your hard-earned money, then exchange traded funds (ETFs) could be worth considering. Rather than deciding on which individual shares you should put your"
        }
    ]
}`

// TeslaNewsBody returns a fresh copy of TeslaNewsJSON as bytes.
func TeslaNewsBody() []byte {
	return []byte(TeslaNewsJSON)
}

// ExpectedNewsRoot returns the decoded form of TeslaNewsJSON.
func ExpectedNewsRoot() entity.NewsRoot {
	return entity.NewsRoot{
		Status:       "ok",
		TotalResults: 9431,
		Articles: []entity.Article{
			{
				Source:      entity.Source{ID: nil, Name: "Salon"},
				Author:      stringPtr("Robert Reich"),
				Title:       "Elon Musk and Jeff Bezos: the great escape",
				Description: "The rich have found ways to protect themselves from the rest of humanity",
				URL:         mustURL("https://www.salon.com/2021/05/01/elon-musk-and-jeff-bezos-the-great-escape_partner/"),
				ImageURL:    mustURL("https://media.salon.com/2020/11/musk-bezos-spacex-1113201.jpg"),
				Content:     "Elon Musk and Jeff Bezos want to colonize outer space to save humanity, but they couldn't care less about protecting the rights of workers here on earth.\r\nMusk's SpaceX just won a $2.9 billion NAS",
			},
			{
				Source:      entity.Source{ID: nil, Name: "Motley Fool Australia"},
				Author:      stringPtr("James Mickleboro"),
				Title:       "3 high quality ETFs for ASX investors in May",
				Description: "BetaShares NASDAQ 100 ETF (ASX:NDQ) and these ASX ETFs could be high quality options for investors in May...\nThe post 3 high quality ETFs for ASX investors in May appeared first on The Motley Fool Australia.",
				URL:         mustURL("https://www.fool.com.au/2021/05/02/3-high-quality-etfs-for-asx-investors-in-may/"),
				ImageURL:    mustURL("https://www.fool.com.au/wp-content/uploads/2021/04/asx-share-price-22.jpg"),
				Content:     "If you’re looking for an easy way to invest your hard-earned money, then exchange traded funds (ETFs) could be worth considering. Rather than deciding on which individual shares you should put your",
			},
		},
	}
}

func stringPtr(s string) *string {
	return &s
}

func mustURL(raw string) url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return *u
}
