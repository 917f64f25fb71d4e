package database

const (
	userColumns = "clerk_id, email, first_name, last_name, image_url, username, created_at, updated_at"

	listUsersQuery = "SELECT " + userColumns + " FROM users ORDER BY clerk_id"
	getUserQuery   = "SELECT " + userColumns + " FROM users WHERE clerk_id = $1 LIMIT 1"
	saveUserQuery  = "INSERT INTO users (" + userColumns + ") " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) " +
		"ON CONFLICT (clerk_id) DO UPDATE SET email = EXCLUDED.email, first_name = EXCLUDED.first_name, " +
		"last_name = EXCLUDED.last_name, image_url = EXCLUDED.image_url, username = EXCLUDED.username, " +
		"updated_at = EXCLUDED.updated_at " +
		"RETURNING " + userColumns
	deleteUserQuery = "DELETE FROM users WHERE clerk_id = $1"
)

const (
	clubColumns = "id, name, description, location, founding_year, membership_fee, max_capacity, " +
		"current_members, contact_email, banner_url, user_id"

	listClubsQuery  = "SELECT " + clubColumns + " FROM clubs ORDER BY id"
	getClubQuery    = "SELECT " + clubColumns + " FROM clubs WHERE id = $1 LIMIT 1"
	insertClubQuery = "INSERT INTO clubs (name, description, location, founding_year, membership_fee, " +
		"max_capacity, current_members, contact_email, banner_url, user_id) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) " +
		"RETURNING " + clubColumns
	updateClubQuery = "UPDATE clubs SET name = $2, description = $3, location = $4, founding_year = $5, " +
		"membership_fee = $6, max_capacity = $7, current_members = $8, contact_email = $9, " +
		"banner_url = $10, user_id = $11 " +
		"WHERE id = $1 RETURNING " + clubColumns
	deleteClubQuery = "DELETE FROM clubs WHERE id = $1"
)

const (
	bookColumns = "id, title, author, description, price, publication_year, COALESCE(isbn, '') AS isbn, user_id"

	listBooksQuery  = "SELECT " + bookColumns + " FROM books ORDER BY id"
	getBookQuery    = "SELECT " + bookColumns + " FROM books WHERE id = $1 LIMIT 1"
	insertBookQuery = "INSERT INTO books (title, author, description, price, publication_year, isbn, user_id) " +
		"VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7) " +
		"RETURNING " + bookColumns
	updateBookQuery = "UPDATE books SET title = $2, author = $3, description = $4, price = $5, " +
		"publication_year = $6, isbn = NULLIF($7, ''), user_id = $8 " +
		"WHERE id = $1 RETURNING " + bookColumns
	deleteBookQuery = "DELETE FROM books WHERE id = $1"
)

const (
	messageColumns = "id, content, created_at, user_id"

	listMessagesQuery  = "SELECT " + messageColumns + " FROM messages ORDER BY id"
	getMessageQuery    = "SELECT " + messageColumns + " FROM messages WHERE id = $1 LIMIT 1"
	insertMessageQuery = "INSERT INTO messages (content, created_at, user_id) " +
		"VALUES ($1, $2, $3) RETURNING " + messageColumns
	updateMessageQuery = "UPDATE messages SET content = $2, created_at = $3, user_id = $4 " +
		"WHERE id = $1 RETURNING " + messageColumns
	deleteMessageQuery = "DELETE FROM messages WHERE id = $1"
)
