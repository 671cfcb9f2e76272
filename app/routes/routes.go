package routes

import (
	"encoding/json"
	"log"
	"net/http"

	"postboard/app/controllers"
	"postboard/app/middleware"
	"postboard/app/repositories"
	"postboard/app/services"

	"github.com/gorilla/mux"
)

// SetupRoutes wires the post and comment resources over the given
// repositories and returns the router.
func SetupRoutes(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)

	router.NotFoundHandler = jsonError("Not found", http.StatusNotFound)
	router.MethodNotAllowedHandler = jsonError("Method not allowed", http.StatusMethodNotAllowed)

	postController := controllers.NewPostController(services.NewPostService(postRepo, commentRepo))
	commentController := controllers.NewCommentController(services.NewCommentService(commentRepo))

	// Posts endpoints
	posts := router.PathPrefix("/posts").Subrouter()
	for _, root := range []string{"", "/"} {
		posts.HandleFunc(root, postController.Index).Methods("GET")
		posts.HandleFunc(root, postController.Create).Methods("POST")
	}
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id}", postController.Update).Methods("PUT")
	posts.HandleFunc("/{id}", postController.Delete).Methods("DELETE")
	posts.HandleFunc("/{id}/comments", postController.Comments).Methods("GET")

	// Comments endpoints
	comments := router.PathPrefix("/comments").Subrouter()
	for _, root := range []string{"", "/"} {
		comments.HandleFunc(root, commentController.Index).Methods("GET")
		comments.HandleFunc(root, commentController.Create).Methods("POST")
	}
	comments.HandleFunc("/{id}", commentController.Show).Methods("GET")
	comments.HandleFunc("/{id}", commentController.Update).Methods("PUT")
	comments.HandleFunc("/{id}", commentController.Delete).Methods("DELETE")

	return router
}

func jsonError(message string, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
			log.Printf("encode response: %v", err)
		}
	})
}
