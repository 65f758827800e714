package models

// Topic is a top-level discussion thread container.
type Topic struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	UserID int    `json:"user_id"`
}

// Post is a message within a topic. LikedByUser is a viewer-scoped flag
// joined in by the backend for the requesting session; it is only valid for
// the response it arrived in, never an intrinsic property of the post.
type Post struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	TopicID     int    `json:"topic_id"`
	UserID      int    `json:"user_id"`
	Username    string `json:"username,omitempty"`
	Likes       int    `json:"likes"`
	LikedByUser bool   `json:"likedByUser,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Comment is a reply to a post. Same viewer-scoping rules as Post.
type Comment struct {
	ID          int    `json:"id"`
	Content     string `json:"content"`
	PostID      int    `json:"post_id"`
	UserID      int    `json:"user_id"`
	Username    string `json:"username,omitempty"`
	Likes       int    `json:"likes"`
	LikedByUser bool   `json:"likedByUser,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// ItemTitle/ItemLikes/ItemCreated implement view.Item so collections of all
// three kinds flow through the same presentation pipeline. Comments have no
// title; their content is the searchable text.

func (t Topic) ItemTitle() string   { return t.Title }
func (t Topic) ItemLikes() int      { return 0 }
func (t Topic) ItemCreated() string { return "" }

func (p Post) ItemTitle() string   { return p.Title }
func (p Post) ItemLikes() int      { return p.Likes }
func (p Post) ItemCreated() string { return p.CreatedAt }

func (c Comment) ItemTitle() string   { return c.Content }
func (c Comment) ItemLikes() int      { return c.Likes }
func (c Comment) ItemCreated() string { return c.CreatedAt }
