package controllers

import (
	"errors"
	"net/http"

	"postboard/app/models"
	"postboard/app/repositories"
	"postboard/app/services"
)

const postNotFound = "Post not found"

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := decodeBody(r, &in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), in)
	if err != nil {
		sendInternalError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		sendInternalError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, postNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		sendInternalError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Update handles PUT: it creates the post under the path id when absent
// (201) and replaces it otherwise (200).
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var in models.PostInput
	if err := decodeBody(r, &in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, created, err := pc.postService.UpsertPost(r.Context(), id, in)
	if err != nil {
		sendInternalError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	sendJSON(w, status, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	err = pc.postService.DeletePost(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, postNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		sendInternalError(w, r, err)
		return
	}
	sendNoContent(w)
}

// Comments lists the comments of a post; an unknown post yields [].
func (pc *PostController) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := pc.postService.ListPostComments(r.Context(), id)
	if err != nil {
		sendInternalError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}
