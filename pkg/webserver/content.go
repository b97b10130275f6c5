package webserver

func getIndexHTML() string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>RDS Restore</title>
    <link rel="stylesheet" href="/css/style.css">
</head>
<body>
    <div class="container">
        <header>
            <h1>RDS Restore</h1>
            <p class="subtitle">Restore a DB instance from one of its snapshots</p>
        </header>

        <div class="card">
            <div class="card-header">
                <div class="form-group inline">
                    <label for="region">Region</label>
                    <select id="region" class="input"></select>
                </div>
                <button id="refresh" class="btn btn-primary">Refresh</button>
            </div>
        </div>

        <div class="columns">
            <div class="card">
                <h2>DB Instances</h2>
                <table id="instances" class="grid">
                    <thead>
                        <tr><th>Name</th><th>Status</th><th>Storage</th><th>Max Storage</th></tr>
                    </thead>
                    <tbody></tbody>
                </table>
            </div>

            <div class="card">
                <h2>Snapshots</h2>
                <table id="snapshots" class="grid">
                    <thead>
                        <tr><th>Name</th><th>Created</th><th>Status</th></tr>
                    </thead>
                    <tbody></tbody>
                </table>
            </div>
        </div>

        <div class="card">
            <form id="restore-form" class="form">
                <div class="form-group inline">
                    <label for="new-name">New DB name</label>
                    <input type="text" id="new-name" class="input" placeholder="e.g., restored-db">
                </div>
                <button type="submit" id="restore" class="btn btn-success">Restore</button>
            </form>
        </div>

        <div class="card">
            <h2>Activity <a href="/api/activity/export" class="export" download>Export</a></h2>
            <ul id="activity" class="activity"></ul>
        </div>
    </div>

    <div id="message" class="message hidden">
        <p id="message-text"></p>
        <button id="message-ok" class="btn btn-primary">OK</button>
    </div>

    <script src="/js/app.js"></script>
</body>
</html>`
}

func getStyleCSS() string {
	return `* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
    background: #eef1f5;
    min-height: 100vh;
    padding: 20px;
}

.container {
    max-width: 1200px;
    margin: 0 auto;
}

header {
    text-align: center;
    margin-bottom: 24px;
}

header h1 {
    font-size: 2em;
    margin-bottom: 6px;
}

.subtitle {
    opacity: 0.7;
}

.card {
    background: white;
    border-radius: 10px;
    padding: 16px;
    margin-bottom: 16px;
    box-shadow: 0 4px 6px rgba(0,0,0,0.08);
}

.card h2 {
    font-size: 1.1em;
    margin-bottom: 10px;
}

.card-header {
    display: flex;
    justify-content: space-between;
    align-items: center;
}

.columns {
    display: grid;
    grid-template-columns: 1fr 1fr;
    gap: 16px;
}

.form {
    display: flex;
    align-items: center;
    justify-content: space-between;
}

.form-group.inline {
    display: flex;
    align-items: center;
    gap: 10px;
}

.input {
    padding: 8px 10px;
    border: 1px solid #ccc;
    border-radius: 6px;
    font-size: 1em;
    min-width: 240px;
}

.btn {
    padding: 8px 18px;
    border: none;
    border-radius: 6px;
    cursor: pointer;
    font-size: 1em;
    color: white;
}

.btn:disabled {
    opacity: 0.5;
    cursor: wait;
}

.btn-primary {
    background: #4a6fd1;
}

.btn-success {
    background: #2e9d5b;
}

table.grid {
    width: 100%;
    border-collapse: collapse;
}

table.grid th {
    text-align: left;
    padding: 6px 8px;
    border-bottom: 2px solid #ddd;
}

table.grid td {
    padding: 6px 8px;
    cursor: pointer;
}

table.grid tr.oldlace td {
    background: oldlace;
}

table.grid tr.white td {
    background: white;
}

table.grid tr.selected td {
    background: #cfe0ff;
}

.export {
    font-size: 12px;
    font-weight: normal;
    margin-left: 8px;
}

.activity {
    list-style: none;
    max-height: 200px;
    overflow-y: auto;
    font-family: monospace;
    font-size: 0.9em;
}

.activity li.rejection,
.activity li.gateway_error {
    color: #b03a2e;
}

.message {
    position: fixed;
    top: 30%;
    left: 50%;
    transform: translateX(-50%);
    background: white;
    padding: 20px 24px;
    border-radius: 10px;
    box-shadow: 0 10px 30px rgba(0,0,0,0.3);
    max-width: 520px;
    text-align: center;
}

.message p {
    margin-bottom: 14px;
}

.hidden {
    display: none;
}`
}

func getAppJS() string {
	return `var API_BASE = '/api';
var busy = false;

function escapeHTML(s) {
    return String(s).replace(/[&<>"']/g, function(c) {
        return {'&': '&amp;', '<': '&lt;', '>': '&gt;', '"': '&quot;', "'": '&#39;'}[c];
    });
}

function setBusy(value) {
    busy = value;
    document.querySelectorAll('button, select, input').forEach(function(el) {
        if (el.id !== 'message-ok') {
            el.disabled = value;
        }
    });
}

function showMessage(text) {
    document.getElementById('message-text').textContent = text;
    document.getElementById('message').classList.remove('hidden');
}

document.getElementById('message-ok').addEventListener('click', function() {
    document.getElementById('message').classList.add('hidden');
});

async function call(method, path, body) {
    if (busy) {
        return;
    }
    setBusy(true);
    try {
        var options = {method: method, headers: {'Content-Type': 'application/json'}};
        if (body !== undefined) {
            options.body = JSON.stringify(body);
        }
        var response = await fetch(API_BASE + path, options);
        var data = await response.json();
        if (data.data) {
            render(data.data);
        }
        if (response.status === 400) {
            console.error(data.error);
        } else if (data.error) {
            showMessage(data.error);
        } else if (data.message) {
            showMessage(data.message);
        }
    } catch (error) {
        showMessage('Request failed: ' + error.message);
    } finally {
        setBusy(false);
        loadActivity();
    }
}

function render(state) {
    var region = document.getElementById('region');
    region.innerHTML = state.regions.map(function(r) {
        return '<option' + (r === state.region ? ' selected' : '') + '>' + escapeHTML(r) + '</option>';
    }).join('');

    document.querySelector('#instances tbody').innerHTML = state.instances.map(function(inst, i) {
        var cls = inst.hint + (i === state.selected_instance ? ' selected' : '');
        return '<tr class="' + cls + '" data-index="' + i + '">' +
            '<td>' + escapeHTML(inst.identifier) + '</td>' +
            '<td>' + escapeHTML(inst.status) + '</td>' +
            '<td>' + escapeHTML(inst.storage) + '</td>' +
            '<td>' + escapeHTML(inst.max_storage) + '</td>' +
            '</tr>';
    }).join('');

    document.querySelector('#snapshots tbody').innerHTML = state.snapshots.map(function(snap, i) {
        var cls = snap.hint + (i === state.selected_snapshot ? ' selected' : '');
        return '<tr class="' + cls + '" data-index="' + i + '" title="' + escapeHTML(snap.age) + ' old">' +
            '<td>' + escapeHTML(snap.identifier) + '</td>' +
            '<td>' + escapeHTML(snap.created) + '</td>' +
            '<td>' + escapeHTML(snap.status) + '</td>' +
            '</tr>';
    }).join('');

    document.getElementById('new-name').value = state.proposed_name;
}

async function loadState() {
    try {
        var response = await fetch(API_BASE + '/state');
        var data = await response.json();
        if (data.data) {
            render(data.data);
        }
    } catch (error) {
        showMessage('Failed to load state: ' + error.message);
    }
    loadActivity();
}

async function loadActivity() {
    try {
        var response = await fetch(API_BASE + '/activity');
        var data = await response.json();
        var entries = data.data || [];
        document.getElementById('activity').innerHTML = entries.slice().reverse().map(function(e) {
            return '<li class="' + escapeHTML(e.kind) + '">' +
                escapeHTML(new Date(e.time).toLocaleTimeString()) + ' ' + escapeHTML(e.message) + '</li>';
        }).join('');
    } catch (error) {
        // the activity panel is informational
    }
}

document.getElementById('region').addEventListener('change', function() {
    call('POST', '/region', {index: this.selectedIndex});
});

document.getElementById('refresh').addEventListener('click', function() {
    call('POST', '/refresh');
});

document.querySelector('#instances tbody').addEventListener('click', function(e) {
    var row = e.target.closest('tr');
    if (row) {
        call('POST', '/instances/select', {index: Number(row.dataset.index)});
    }
});

document.querySelector('#snapshots tbody').addEventListener('click', function(e) {
    var row = e.target.closest('tr');
    if (row) {
        call('POST', '/snapshots/select', {index: Number(row.dataset.index)});
    }
});

document.getElementById('restore-form').addEventListener('submit', function(e) {
    e.preventDefault();
    call('POST', '/restore', {name: document.getElementById('new-name').value});
});

loadState();`
}
